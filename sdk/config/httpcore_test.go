// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
)

func TestHTTPCoreEndpoints(t *testing.T) {
	core := config.NewHTTPCore(nil, config.CoreConfig{BaseURL: "http://edge.local/", ProductID: "p1"})
	e := core.Endpoints()
	assert.Equal(t, "http://edge.local/v1/products/p1", e.Product)
	assert.Equal(t, "http://edge.local/v1/products/p1/submissions", e.Submissions)
	assert.Equal(t, "http://edge.local/v1/products/p1/submissions/draft/package", e.DraftPackage)
	assert.Equal(t, "http://edge.local/v1/products/p1/submissions/draft/package/operations/x", e.UploadOperation("x"))
	assert.Equal(t, "http://edge.local/v1/products/p1/submissions/operations/x", e.PublishOperation("x"))
}

func TestHTTPCoreDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "ApiKey k", r.Header.Get("Authorization"))
		assert.Equal(t, "c", r.Header.Get("X-ClientID"))
		assert.Equal(t, "application/zip", r.Header.Get("Content-Type"))
		assert.Equal(t, "data", string(body))
		w.Header().Set("Location", "op-9")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	core := config.NewHTTPCore(nil, config.CoreConfig{BaseURL: srv.URL, ProductID: "p", ClientID: "c", APIKey: "k"})
	resp, err := core.Do(context.Background(), config.Request{
		Method:      http.MethodPost,
		URL:         srv.URL,
		Body:        strings.NewReader("data"),
		ContentType: "application/zip",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "op-9", resp.Location())
	assert.NoError(t, resp.Err())
}

func TestHTTPCoreDoContentLength(t *testing.T) {
	var gotLength int64
	var gotEncoding []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		gotLength = r.ContentLength
		gotEncoding = r.TransferEncoding
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	core := config.NewHTTPCore(nil, config.CoreConfig{BaseURL: srv.URL, ProductID: "p", ClientID: "c", APIKey: "k"})
	// a reader whose length net/http cannot infer
	body := io.MultiReader(strings.NewReader("0123456789"))
	_, err := core.Do(context.Background(), config.Request{
		Method:        http.MethodPost,
		URL:           srv.URL,
		Body:          body,
		ContentLength: 10,
		ContentType:   "application/zip",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), gotLength)
	assert.Empty(t, gotEncoding)
}

func TestResponseErr(t *testing.T) {
	resp := &config.Response{StatusCode: 404, Status: "404 Not Found", Body: []byte(`{"message":"no such product"}`)}
	assert.EqualError(t, resp.Err(), "edge api responded with: 404 Not Found - no such product")

	resp = &config.Response{StatusCode: 500, Status: "500 Internal Server Error", Body: []byte("oops")}
	assert.EqualError(t, resp.Err(), "edge api responded with: 500 Internal Server Error")
}
