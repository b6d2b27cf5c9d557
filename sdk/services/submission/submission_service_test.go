// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/services/submission"
)

func TestNewSubmissionServiceRejectsMissingFields(t *testing.T) {
	full := map[string]config.CoreConfig{
		"apikey": {ProductID: "p", ClientID: "c", APIKey: "k"},
		"oauth":  {ProductID: "p", ClientID: "c", ClientSecret: "s", AccessTokenURL: "https://login.example/token"},
	}
	unset := map[string]func(*config.CoreConfig){
		"productId":      func(c *config.CoreConfig) { c.ProductID = "" },
		"clientId":       func(c *config.CoreConfig) { c.ClientID = "" },
		"apiKey":         func(c *config.CoreConfig) { c.APIKey = "" },
		"clientSecret":   func(c *config.CoreConfig) { c.ClientSecret = "" },
		"accessTokenUrl": func(c *config.CoreConfig) { c.AccessTokenURL = "" },
	}

	for variant, core := range full {
		method := config.AuthAPIKey
		if variant == "oauth" {
			method = config.AuthOAuth
		}
		for _, field := range config.RequiredFields(method) {
			t.Run(variant+"/"+field, func(t *testing.T) {
				c := core
				c.Auth = method
				unset[field](&c)

				svc, err := submission.NewSubmissionService(context.Background(), config.Config{Core: c})
				require.Error(t, err)
				assert.Nil(t, svc)

				var confErr *config.ConfigurationError
				require.True(t, errors.As(err, &confErr))
				assert.Equal(t, field, confErr.Field)
				assert.Contains(t, err.Error(), "https://partner.microsoft.com/")
			})
		}
	}
}

func TestEndpoints(t *testing.T) {
	svc, err := submission.NewSubmissionService(context.Background(), config.Config{
		Core: config.CoreConfig{ProductID: "abc", ClientID: "c", APIKey: "k"},
	})
	require.NoError(t, err)

	e := svc.Endpoints()
	assert.Equal(t, "https://api.addons.microsoftedge.microsoft.com/v1/products/abc", e.Product)
	assert.Equal(t, e.Product+"/submissions", e.Submissions)
	assert.Equal(t, e.Submissions+"/draft/package", e.DraftPackage)
	assert.Equal(t, e.DraftPackage+"/operations/op", e.UploadOperation("op"))
	assert.Equal(t, e.Submissions+"/operations/op", e.PublishOperation("op"))
}

func TestAccessTokenAPIKeyIsEmpty(t *testing.T) {
	svc, err := submission.NewSubmissionService(context.Background(), config.Config{
		Core: config.CoreConfig{ProductID: "p", ClientID: "c", APIKey: "k"},
	})
	require.NoError(t, err)

	tok, err := svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}
