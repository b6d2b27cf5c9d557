// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import "net/http"

// CheckAccepted classifies the answer to an upload or publish request:
// only 202 Accepted is a success.
func CheckAccepted(statusCode int, action Action) error {
	if statusCode == http.StatusAccepted {
		return nil
	}
	return &UnexpectedStatusError{Action: action, StatusCode: statusCode}
}
