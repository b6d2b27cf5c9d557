// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package artifact

import "io"

// Artifact is an open package stream. Size is -1 when unknown.
type Artifact struct {
	io.ReadCloser

	Name string
	Size int64
}
