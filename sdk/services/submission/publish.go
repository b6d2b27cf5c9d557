// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/utils"
)

// Publish submits the current draft and returns the id of the publish operation.
func (s *SubmissionService) Publish(ctx context.Context, req PublishRequest) (string, error) {
	token, err := s.token(ctx, req.Token)
	if err != nil {
		return "", err
	}

	var body io.Reader
	if req.Notes != "" {
		body = strings.NewReader(s.notesBody(req.Notes))
	}

	resp, err := s.http.Do(ctx, config.Request{
		Method:      http.MethodPost,
		URL:         s.http.Endpoints().Submissions,
		Body:        body,
		ContentType: "application/x-www-form-urlencoded",
		Token:       token,
	})
	if err != nil {
		return "", err
	}
	if err := CheckAccepted(resp.StatusCode, ActionSubmit); err != nil {
		return "", err
	}
	return resp.Location(), nil
}

// notesBody builds the `{ "notes"="..." }` literal the API has always been sent.
// Notes go in verbatim unless EscapeNotes is set.
func (s *SubmissionService) notesBody(notes string) string {
	if s.conf.EscapeNotes {
		quoted, _ := json.Marshal(notes)
		return `{ "notes"=` + string(quoted) + ` }`
	}
	if needsEscaping(notes) {
		utils.Warnf("publish notes contain quotes, backslashes or control characters and are sent unescaped; enable notes escaping to encode them")
	}
	return `{ "notes"="` + notes + `" }`
}

func needsEscaping(s string) bool {
	for _, r := range s {
		if r == '"' || r == '\\' || r < 0x20 {
			return true
		}
	}
	return false
}

// GetPublishStatus returns the publish operation payload as reported by the API.
func (s *SubmissionService) GetPublishStatus(ctx context.Context, operationID string) (*Operation, error) {
	if operationID == "" {
		return nil, errors.New("operation id not specified")
	}
	token, err := s.token(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.getOperation(ctx, s.http.Endpoints().PublishOperation(operationID), token)
}
