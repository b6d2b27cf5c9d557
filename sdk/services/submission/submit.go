// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"fmt"
	"io"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/utils"
)

// Submit uploads the package at req.FilePath, waits for the upload to be
// processed and publishes the draft. It returns the publish operation id, or
// "" when the configuration is upload only. A bearer token is fetched once and
// used for every request of the submission.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	id := utils.ShortID()

	token, err := s.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	a, err := s.artifacts.Open(ctx, req.FilePath)
	if err != nil {
		return "", err
	}
	defer a.Close()

	utils.Infof("[%s] Uploading %s (%d bytes) for product %s", id, a.Name, a.Size, s.conf.ProductID)
	var body io.Reader = a
	if utils.IsVerbose() {
		body = utils.NewProgressReader(a, a.Size)
	}
	operationID, err := s.Upload(ctx, UploadRequest{Body: body, Size: a.Size, Token: token})
	if err != nil {
		return "", err
	}

	utils.Infof("[%s] Waiting for upload operation %s", id, operationID)
	res, err := s.WaitForUpload(ctx, WaitRequest{OperationID: operationID, Token: token})
	if err != nil {
		return "", err
	}
	if res.Outcome == OutcomeTimedOut && req.FailOnPollTimeout {
		return "", fmt.Errorf("%w: operation %s, %d polls", ErrPollTimeout, operationID, res.Attempts)
	}
	if res.Message != "" {
		utils.Infof("[%s] Upload: %s", id, res.Message)
	}

	if s.conf.UploadOnly && s.conf.AuthMethod() == config.AuthAPIKey {
		utils.Infof("[%s] Upload only, skipping publish", id)
		return "", nil
	}

	publishID, err := s.Publish(ctx, PublishRequest{Notes: req.Notes, Token: token})
	if err != nil {
		return "", err
	}
	utils.Infof("[%s] Publish operation %s", id, publishID)
	return publishID, nil
}
