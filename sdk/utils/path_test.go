// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	pp, err := ParsePath("build/extension.zip")
	require.NoError(t, err)
	assert.Equal(t, "", pp.Scheme)
	assert.Equal(t, "build/extension.zip", pp.Path)
	assert.Equal(t, "extension.zip", pp.Filename)

	pp, err = ParsePath("s3://releases/edge/extension.zip")
	require.NoError(t, err)
	assert.Equal(t, "s3", pp.Scheme)
	assert.Equal(t, "releases", pp.Host)
	assert.Equal(t, "edge/extension.zip", pp.Path)
	assert.Equal(t, "extension.zip", pp.Filename)

	pp, err = ParsePath("https://cdn.example.com/builds/ext.zip?sig=1")
	require.NoError(t, err)
	assert.Equal(t, "https", pp.Scheme)
	assert.Equal(t, "https://cdn.example.com/builds/ext.zip?sig=1", pp.Path)
	assert.Equal(t, "ext.zip", pp.Filename)
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "s3://bucket-only", "ftp://host/file.zip"} {
		_, err := ParsePath(p)
		assert.Error(t, err, p)
	}
}
