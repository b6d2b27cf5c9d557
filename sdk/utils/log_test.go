// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevels(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetLogOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetLogOutput(&buf)

	Infof("uploading %s", "a.zip")
	Warnf("slow")
	Debugf("hidden")
	assert.Equal(t, "[INFO] uploading a.zip\n[WARN] slow\n", buf.String())

	buf.Reset()
	SetVerbose(true)
	Debugf("poll %d", 2)
	assert.Equal(t, "[DEBUG] poll 2\n", buf.String())
}
