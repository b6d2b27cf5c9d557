// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/services/submission"
)

const productPath = "/v1/products/p"

type recordedRequest struct {
	Method           string
	Path             string
	Header           http.Header
	Body             string
	ContentLength    int64
	TransferEncoding []string
}

// fakeEdge is an in-memory Edge Add-ons API for a product with id "p".
type fakeEdge struct {
	mu sync.Mutex

	uploadStatus    int
	uploadLocation  string
	publishStatus   int
	publishLocation string
	// upload status answers in order; the last one repeats
	polls      []submission.Operation
	publishOps map[string]submission.Operation
	tokenCode  int

	requests   []recordedRequest
	pollCount  int
	uploads    int
	publishes  int
	tokenCalls int
	tokenForms []url.Values
}

func newFakeEdge(t *testing.T) (*fakeEdge, *httptest.Server) {
	t.Helper()
	f := &fakeEdge{
		uploadStatus:    http.StatusAccepted,
		uploadLocation:  "op1",
		publishStatus:   http.StatusAccepted,
		publishLocation: "op2",
		polls:           []submission.Operation{{ID: "op1", Status: submission.StatusSucceeded, Message: "ok"}},
		publishOps:      map[string]submission.Operation{},
		tokenCode:       http.StatusOK,
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeEdge) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, recordedRequest{
		Method:           r.Method,
		Path:             r.URL.Path,
		Header:           r.Header.Clone(),
		Body:             string(body),
		ContentLength:    r.ContentLength,
		TransferEncoding: r.TransferEncoding,
	})

	switch {
	case r.URL.Path == "/token" && r.Method == http.MethodPost:
		f.tokenCalls++
		form, _ := url.ParseQuery(string(body))
		f.tokenForms = append(f.tokenForms, form)
		w.Header().Set("Content-Type", "application/json")
		if f.tokenCode != http.StatusOK {
			w.WriteHeader(f.tokenCode)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("tok-%d", f.tokenCalls),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})

	case r.URL.Path == productPath+"/submissions/draft/package" && r.Method == http.MethodPost:
		f.uploads++
		if f.uploadLocation != "" {
			w.Header().Set("Location", f.uploadLocation)
		}
		w.WriteHeader(f.uploadStatus)

	case strings.HasPrefix(r.URL.Path, productPath+"/submissions/draft/package/operations/") && r.Method == http.MethodGet:
		i := f.pollCount
		if i >= len(f.polls) {
			i = len(f.polls) - 1
		}
		f.pollCount++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.polls[i])

	case r.URL.Path == productPath+"/submissions" && r.Method == http.MethodPost:
		f.publishes++
		if f.publishLocation != "" {
			w.Header().Set("Location", f.publishLocation)
		}
		w.WriteHeader(f.publishStatus)

	case strings.HasPrefix(r.URL.Path, productPath+"/submissions/operations/") && r.Method == http.MethodGet:
		id := strings.TrimPrefix(r.URL.Path, productPath+"/submissions/operations/")
		op, ok := f.publishOps[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"operation not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(op)

	default:
		w.WriteHeader(http.StatusTeapot)
	}
}

func (f *fakeEdge) requestsTo(method, path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func apiKeyConfig(baseURL string) config.Config {
	return config.Config{Core: config.CoreConfig{
		BaseURL:   baseURL,
		ProductID: "p",
		ClientID:  "c",
		APIKey:    "k",
	}}
}

func oauthConfig(baseURL string) config.Config {
	return config.Config{Core: config.CoreConfig{
		BaseURL:        baseURL,
		ProductID:      "p",
		ClientID:       "c",
		ClientSecret:   "s",
		AccessTokenURL: baseURL + "/token",
	}}
}

type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
	return nil
}

func newService(t *testing.T, conf config.Config) (*submission.SubmissionService, *sleepRecorder) {
	t.Helper()
	rec := &sleepRecorder{}
	svc, err := submission.NewSubmissionService(context.Background(), conf, submission.WithSleep(rec.sleep))
	require.NoError(t, err)
	return svc, rec
}

func writePackage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extension.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04 fake zip"), 0o600))
	return path
}
