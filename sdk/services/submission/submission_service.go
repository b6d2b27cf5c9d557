// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"net/http"
	"time"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/services/artifact"
)

// ArtifactOpener provides the package bytes for Submit.
type ArtifactOpener interface {
	Open(ctx context.Context, path string) (*artifact.Artifact, error)
}

type SubmissionService struct {
	http      config.CoreHTTP
	conf      config.CoreConfig
	artifacts ArtifactOpener
	sleep     func(ctx context.Context, d time.Duration) error
}

type options struct {
	httpClient *http.Client
	artifacts  ArtifactOpener
	sleep      func(ctx context.Context, d time.Duration) error
}

type Option func(*options)

// WithHTTPClient sets the client used for API, token and artifact requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithArtifactOpener(a ArtifactOpener) Option {
	return func(o *options) { o.artifacts = a }
}

// WithSleep replaces the wait between status polls.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *options) { o.sleep = fn }
}

// NewSubmissionService validates the credentials of conf and fails with a
// *config.ConfigurationError naming the first missing field.
func NewSubmissionService(_ context.Context, conf config.Config, opts ...Option) (*SubmissionService, error) {
	if err := conf.Core.Validate(); err != nil {
		return nil, err
	}

	o := options{sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}
	if o.artifacts == nil {
		o.artifacts = artifact.NewArtifactService(o.httpClient, conf)
	}

	core := conf.Core.WithDefaults()
	return &SubmissionService{
		http:      config.NewHTTPCore(o.httpClient, core),
		conf:      core,
		artifacts: o.artifacts,
		sleep:     o.sleep,
	}, nil
}

// Endpoints exposes the product URLs the service talks to.
func (s *SubmissionService) Endpoints() config.Endpoints {
	return s.http.Endpoints()
}

// AccessToken fetches a bearer token for the OAuth variant. The API key
// variant has no token and returns "".
func (s *SubmissionService) AccessToken(ctx context.Context) (string, error) {
	return s.http.Credentials().Refresh(ctx)
}

func (s *SubmissionService) token(ctx context.Context, token string) (string, error) {
	if token != "" {
		return token, nil
	}
	return s.AccessToken(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
