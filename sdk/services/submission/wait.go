// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/utils"
)

// WaitForUpload polls the upload operation until it succeeds, fails or the
// retry budget is spent. Every poll counts against RetryCount, and an
// InProgress answer is followed by a PollInterval pause. RetryCount and
// PollInterval <= 0 use the service configuration.
//
// A Failed operation is returned as *OperationFailedError. Running out of polls
// is not an error: the result has Outcome OutcomeTimedOut and no message.
func (s *SubmissionService) WaitForUpload(ctx context.Context, req WaitRequest) (*WaitResult, error) {
	if req.OperationID == "" {
		return nil, errors.New("operation id not specified")
	}
	retryCount := req.RetryCount
	if retryCount <= 0 {
		retryCount = s.conf.RetryCount
	}
	pollInterval := req.PollInterval
	if pollInterval <= 0 {
		pollInterval = s.conf.PollInterval
	}

	token, err := s.token(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	url := s.http.Endpoints().UploadOperation(req.OperationID)
	result := &WaitResult{Outcome: OutcomeTimedOut}

	var status OperationStatus
	for status != StatusSucceeded && result.Attempts < retryCount {
		op, err := s.getOperation(ctx, url, token)
		if err != nil {
			return nil, err
		}

		switch op.Status {
		case StatusFailed:
			return nil, failure(req.OperationID, op)
		case StatusInProgress:
			utils.Debugf("upload %s in progress (poll %d/%d), next poll in %s",
				req.OperationID, result.Attempts+1, retryCount, pollInterval)
			if err := s.sleep(ctx, pollInterval); err != nil {
				return nil, err
			}
		case StatusSucceeded:
			result.Outcome = OutcomeSucceeded
			result.Message = op.Message
		default:
			utils.Warnf("upload %s reported unknown status %q", req.OperationID, op.Status)
		}

		status = op.Status
		result.Attempts++
		result.Last = op
	}

	if result.Outcome == OutcomeTimedOut {
		utils.Warnf("upload %s still in progress after %d polls", req.OperationID, result.Attempts)
	}
	return result, nil
}
