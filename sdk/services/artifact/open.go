// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/utils"
)

// Open returns the package at path as a byte stream. path is a local file,
// s3://bucket/key or an http(s) URL. The caller closes the artifact.
func (s *ArtifactService) Open(ctx context.Context, path string) (*Artifact, error) {
	pp, err := utils.ParsePath(path)
	if err != nil {
		return nil, err
	}

	switch pp.Scheme {
	case "":
		return openLocal(pp.Path)
	case "s3":
		return s.openS3(ctx, pp)
	case "http", "https":
		return s.openHTTP(ctx, pp)
	}
	return nil, fmt.Errorf("unsupported scheme %q", pp.Scheme)
}

func openLocal(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat error: %w", err)
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("artifact %s is a directory", path)
	}
	return &Artifact{ReadCloser: f, Name: st.Name(), Size: st.Size()}, nil
}

func (s *ArtifactService) openHTTP(ctx context.Context, pp *utils.ParsedPath) (*Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pp.Path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("artifact download responded with: %s", resp.Status)
	}
	return &Artifact{ReadCloser: resp.Body, Name: pp.Filename, Size: resp.ContentLength}, nil
}

// openS3 downloads the object into a temporary file that is removed on Close.
func (s *ArtifactService) openS3(ctx context.Context, pp *utils.ParsedPath) (*Artifact, error) {
	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}

	tmp := filepath.Join(os.TempDir(), "edgeaddons-"+utils.UUIDv4NoDash()+"-"+pp.Filename)
	utils.Debugf("Downloading s3://%s/%s → %s", pp.Host, pp.Path, tmp)
	if _, err := client.DownloadFile(ctx, pp.Host, pp.Path, tmp); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	a, err := openLocal(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	a.Name = pp.Filename
	a.ReadCloser = &tempFile{ReadCloser: a.ReadCloser, path: tmp}
	return a, nil
}

type tempFile struct {
	io.ReadCloser
	path string
}

func (t *tempFile) Close() error {
	err := t.ReadCloser.Close()
	if rerr := os.Remove(t.path); err == nil {
		err = rerr
	}
	return err
}
