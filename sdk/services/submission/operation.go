// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
)

func (s *SubmissionService) getOperation(ctx context.Context, url, token string) (*Operation, error) {
	resp, err := s.http.Do(ctx, config.Request{
		Method: http.MethodGet,
		URL:    url,
		Token:  token,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("operation status request failed (status %d): %w", resp.StatusCode, err)
	}

	var op Operation
	if err := json.Unmarshal(resp.Body, &op); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	return &op, nil
}
