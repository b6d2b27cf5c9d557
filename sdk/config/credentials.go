// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// CredentialProvider authorizes requests against the Edge Add-ons API.
//
// Refresh obtains a token for the following requests (empty for the API key
// variant) and Authorize sets the authorization headers, using the token
// returned by a previous Refresh when the variant needs one.
type CredentialProvider interface {
	Refresh(ctx context.Context) (string, error)
	Authorize(req *http.Request, token string)
}

// NewCredentialProvider picks the provider for the configured auth method.
// httpClient is used for the token exchange; nil means http.DefaultClient.
func NewCredentialProvider(httpClient *http.Client, coreConfig CoreConfig) CredentialProvider {
	if coreConfig.AuthMethod() == AuthAPIKey {
		return &APIKeyProvider{ClientID: coreConfig.ClientID, APIKey: coreConfig.APIKey}
	}
	return NewOAuthProvider(httpClient, coreConfig)
}

type APIKeyProvider struct {
	ClientID string
	APIKey   string
}

func (p *APIKeyProvider) Refresh(context.Context) (string, error) {
	return "", nil
}

func (p *APIKeyProvider) Authorize(req *http.Request, _ string) {
	req.Header.Set("Authorization", "ApiKey "+p.APIKey)
	req.Header.Set("X-ClientID", p.ClientID)
}

// OAuthProvider exchanges client credentials for a bearer token.
type OAuthProvider struct {
	httpClient *http.Client
	conf       *clientcredentials.Config
	cache      bool

	mu     sync.Mutex
	cached oauth2.TokenSource
}

func NewOAuthProvider(httpClient *http.Client, coreConfig CoreConfig) *OAuthProvider {
	scope := coreConfig.Scope
	if scope == "" {
		scope = DefaultScope
	}
	return &OAuthProvider{
		httpClient: httpClient,
		cache:      coreConfig.CacheToken,
		conf: &clientcredentials.Config{
			ClientID:     coreConfig.ClientID,
			ClientSecret: coreConfig.ClientSecret,
			TokenURL:     coreConfig.AccessTokenURL,
			Scopes:       []string{scope},
			// client_id and client_secret travel in the form body
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AccessToken performs the client credentials exchange, or returns the cached
// token while it is still valid when caching is enabled.
func (p *OAuthProvider) AccessToken(ctx context.Context) (*oauth2.Token, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	if !p.cache {
		return p.conf.Token(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached == nil {
		// reuses the token until expires_in elapses; keeps ctx for later exchanges
		p.cached = p.conf.TokenSource(context.WithoutCancel(ctx))
	}
	return p.cached.Token()
}

func (p *OAuthProvider) Refresh(ctx context.Context) (string, error) {
	tok, err := p.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (p *OAuthProvider) Authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
