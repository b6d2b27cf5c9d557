// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParsedPath splits an artifact location. Local paths have an empty Scheme
// and keep the whole input in Path.
type ParsedPath struct {
	Scheme   string
	Host     string
	Path     string
	Filename string
}

func ParsePath(path string) (*ParsedPath, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	i := strings.Index(path, "://")
	if i < 0 {
		return &ParsedPath{Path: path, Filename: lastSegment(path)}, nil
	}

	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("invalid s3 path %q: expected s3://bucket/key", path)
		}
		return &ParsedPath{Scheme: scheme, Host: u.Host, Path: key, Filename: lastSegment(key)}, nil
	case "http", "https":
		// the full URL is what gets requested
		return &ParsedPath{Scheme: scheme, Host: u.Host, Path: path, Filename: lastSegment(u.Path)}, nil
	}
	return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
