// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"errors"
	"net/http"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
)

// Upload posts the package to the draft submission and returns the id of the
// upload operation.
func (s *SubmissionService) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if req.Body == nil {
		return "", errors.New("package body not specified")
	}
	token, err := s.token(ctx, req.Token)
	if err != nil {
		return "", err
	}

	resp, err := s.http.Do(ctx, config.Request{
		Method:        http.MethodPost,
		URL:           s.http.Endpoints().DraftPackage,
		Body:          req.Body,
		ContentLength: req.Size,
		ContentType:   "application/zip",
		Token:         token,
	})
	if err != nil {
		return "", err
	}
	if err := CheckAccepted(resp.StatusCode, ActionUpload); err != nil {
		return "", err
	}

	operationID := resp.Location()
	if operationID == "" {
		return "", errors.New("upload accepted but no operation id in Location header")
	}
	return operationID, nil
}
