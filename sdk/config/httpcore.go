// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Endpoints are the product scoped URLs of the Edge Add-ons API.
type Endpoints struct {
	Product      string
	Submissions  string
	DraftPackage string
}

// UploadOperation is the status URL of a package upload operation.
func (e Endpoints) UploadOperation(operationID string) string {
	return e.DraftPackage + "/operations/" + operationID
}

// PublishOperation is the status URL of a publish operation.
func (e Endpoints) PublishOperation(operationID string) string {
	return e.Submissions + "/operations/" + operationID
}

// Request is a single call to the API. Token is handed to the credential
// provider; leave it empty for the API key variant. ContentLength is sent when
// > 0 and must match the bytes Body yields; otherwise the length is inferred
// from Body where possible.
type Request struct {
	Method        string
	URL           string
	Body          io.Reader
	ContentLength int64
	ContentType   string
	Token         string
}

type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Location is the operation id returned by upload and publish calls.
func (r *Response) Location() string {
	return r.Header.Get("Location")
}

// Err reports a non-2xx response, including the "message" field of the body when present.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	var m map[string]any
	if json.Unmarshal(r.Body, &m) == nil {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return fmt.Errorf("edge api responded with: %s - %s", r.Status, msg)
		}
	}
	return fmt.Errorf("edge api responded with: %s", r.Status)
}

type CoreHTTP interface {
	Endpoints() Endpoints
	Credentials() CredentialProvider
	Do(ctx context.Context, req Request) (*Response, error)
}

type httpCore struct {
	httpClient  *http.Client
	coreConfig  CoreConfig
	credentials CredentialProvider
}

func NewHTTPCore(httpClient *http.Client, coreConfig CoreConfig) CoreHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &httpCore{
		httpClient:  httpClient,
		coreConfig:  coreConfig,
		credentials: NewCredentialProvider(httpClient, coreConfig),
	}
}

func (httpCore *httpCore) Endpoints() Endpoints {
	base := strings.TrimSuffix(httpCore.coreConfig.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	product := fmt.Sprintf("%s/v1/products/%s", base, httpCore.coreConfig.ProductID)
	submissions := product + "/submissions"
	return Endpoints{
		Product:      product,
		Submissions:  submissions,
		DraftPackage: submissions + "/draft/package",
	}
}

func (httpCore *httpCore) Credentials() CredentialProvider {
	return httpCore.credentials
}

// Do sends the request and reads the whole response. Transport errors are
// returned as they come from the http client; status codes are left to the caller.
func (httpCore *httpCore) Do(ctx context.Context, r Request) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, r.Body)
	if err != nil {
		return nil, err
	}
	if r.ContentLength > 0 {
		req.ContentLength = r.ContentLength
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	httpCore.credentials.Authorize(req, r.Token)

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       b,
	}, nil
}
