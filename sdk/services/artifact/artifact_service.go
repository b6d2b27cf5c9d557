// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"net/http"
	"sync"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
)

// ArtifactService opens extension packages from the local disk, S3 or an HTTP server.
type ArtifactService struct {
	httpClient *http.Client
	s3Config   config.S3Config

	mu sync.Mutex
	s3 *config.S3Client
}

func NewArtifactService(httpClient *http.Client, conf config.Config) *ArtifactService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ArtifactService{httpClient: httpClient, s3Config: conf.S3}
}

// s3Client loads the AWS configuration on first use only, so that local
// artifacts never touch it.
func (s *ArtifactService) s3Client(ctx context.Context) (*config.S3Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.s3 != nil {
		return s.s3, nil
	}
	c, err := config.NewS3Client(ctx, s.s3Config)
	if err != nil {
		return nil, err
	}
	s.s3 = c
	return c, nil
}
