// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"
)

const (
	DefaultBaseURL      = "https://api.addons.microsoftedge.microsoft.com"
	DefaultScope        = "https://api.addons.microsoftedge.microsoft.com/.default"
	DefaultRetryCount   = 5
	DefaultPollInterval = 3 * time.Second
)

// Config is everything the SDK needs; no viper/INI lookups happen below this point.
type Config struct {
	Core CoreConfig
	S3   S3Config
}

type CoreConfig struct {
	BaseURL   string
	ProductID string
	ClientID  string

	// Auth selects the credential variant; when empty it is inferred from
	// the fields that are set.
	Auth AuthMethod

	// API key variant
	APIKey     string
	UploadOnly bool

	// OAuth2 client credentials variant
	ClientSecret   string
	AccessTokenURL string
	Scope          string
	// CacheToken reuses the bearer token until it expires instead of
	// fetching a new one for every independent call.
	CacheToken bool

	// EscapeNotes JSON-encodes publish notes instead of embedding them verbatim.
	EscapeNotes bool

	RetryCount   int
	PollInterval time.Duration
}

// S3Config holds credentials for artifacts stored on S3 (s3://bucket/key paths).
type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}

type AuthMethod string

const (
	AuthAPIKey AuthMethod = "apikey"
	AuthOAuth  AuthMethod = "oauth"
)

// AuthMethod reports which credential variant the configuration selects.
func (c CoreConfig) AuthMethod() AuthMethod {
	switch {
	case c.Auth != "":
		return c.Auth
	case c.APIKey != "":
		return AuthAPIKey
	case c.ClientSecret != "" || c.AccessTokenURL != "":
		return AuthOAuth
	}
	return AuthAPIKey
}

var requiredMessages = map[string]string{
	"productId":      "Product ID is required. To get one, go to: https://partner.microsoft.com/en-us/dashboard/microsoftedge/{product-id}/package/dashboard",
	"clientId":       "Client ID is required. To get one: https://partner.microsoft.com/en-us/dashboard/microsoftedge/publishapi",
	"apiKey":         "API Key is required. To get one: https://partner.microsoft.com/en-us/dashboard/microsoftedge/publishapi",
	"clientSecret":   "Client Secret is required. To get one: https://partner.microsoft.com/en-us/dashboard/microsoftedge/publishapi",
	"accessTokenUrl": "Access token URL is required. To get one: https://partner.microsoft.com/en-us/dashboard/microsoftedge/publishapi",
	"authMethod":     `Auth method must be "apikey" or "oauth"`,
}

// ConfigurationError reports a missing required credential field or an
// unknown auth method.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	if msg, ok := requiredMessages[e.Field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// RequiredFields lists the fields the given auth method needs, in check order.
func RequiredFields(method AuthMethod) []string {
	if method == AuthAPIKey {
		return []string{"productId", "clientId", "apiKey"}
	}
	return []string{"productId", "clientId", "clientSecret", "accessTokenUrl"}
}

func (c CoreConfig) field(name string) string {
	switch name {
	case "productId":
		return c.ProductID
	case "clientId":
		return c.ClientID
	case "apiKey":
		return c.APIKey
	case "clientSecret":
		return c.ClientSecret
	case "accessTokenUrl":
		return c.AccessTokenURL
	}
	return ""
}

// Validate checks the auth method and that every field it requires is set.
func (c CoreConfig) Validate() error {
	switch c.AuthMethod() {
	case AuthAPIKey, AuthOAuth:
	default:
		return &ConfigurationError{Field: "authMethod"}
	}
	for _, name := range RequiredFields(c.AuthMethod()) {
		if c.field(name) == "" {
			return &ConfigurationError{Field: name}
		}
	}
	return nil
}

// WithDefaults fills the optional fields left empty.
func (c CoreConfig) WithDefaults() CoreConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	if c.RetryCount <= 0 {
		c.RetryCount = DefaultRetryCount
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}
