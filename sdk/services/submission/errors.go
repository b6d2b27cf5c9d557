// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"errors"
	"fmt"
	"strings"
)

var ErrPollTimeout = errors.New("upload still in progress after all status polls")

// UnexpectedStatusError is a non-202 answer to an upload or publish request.
type UnexpectedStatusError struct {
	Action     Action
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	if e.ServerError() {
		return "Edge server error, please try again later"
	}
	return fmt.Sprintf("%s failed, double check your api credentials", e.Action)
}

// ServerError reports a 5xx answer; the request may succeed if sent again.
func (e *UnexpectedStatusError) ServerError() bool {
	return e.StatusCode >= 500
}

// OperationFailedError is an operation that ended with status Failed.
type OperationFailedError struct {
	OperationID string
	ErrorCode   string
	Errors      []string
	Message     string
}

func (e *OperationFailedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorCode + ":" + strings.Join(e.Errors, ",")
}

func failure(operationID string, op *Operation) error {
	return &OperationFailedError{
		OperationID: operationID,
		ErrorCode:   op.ErrorCode,
		Errors:      op.Errors,
		Message:     op.Message,
	}
}
