// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"encoding/json"
	"io"
	"time"
)

type OperationStatus string

const (
	StatusInProgress OperationStatus = "InProgress"
	StatusSucceeded  OperationStatus = "Succeeded"
	StatusFailed     OperationStatus = "Failed"
)

// Operation is the status payload of an upload or publish operation.
// Message is set on Succeeded; ErrorCode, Errors and optionally Message on Failed.
type Operation struct {
	ID              string          `json:"id"`
	CreatedTime     string          `json:"createdTime"`
	LastUpdatedTime string          `json:"lastUpdatedTime"`
	Status          OperationStatus `json:"status"`
	Message         string          `json:"message,omitempty"`
	ErrorCode       string          `json:"errorCode,omitempty"`
	Errors          ErrorDetails    `json:"errors,omitempty"`
}

// ErrorDetails accepts both plain strings and {"message": "..."} objects.
type ErrorDetails []string

func (e *ErrorDetails) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(ErrorDetails, 0, len(raw))
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return err
		}
		out = append(out, obj.Message)
	}
	*e = out
	return nil
}

type Action string

const (
	ActionSubmit Action = "Submit"
	ActionUpload Action = "Upload"
)

type SubmitRequest struct {
	FilePath string // local path, s3://bucket/key or http(s) URL
	Notes    string

	// FailOnPollTimeout returns ErrPollTimeout when the upload is still in
	// progress after all polls, instead of publishing anyway.
	FailOnPollTimeout bool
}

type UploadRequest struct {
	Body io.Reader
	// Size of Body in bytes; <= 0 leaves the length to the transport.
	Size  int64
	Token string // optional, fetched when empty
}

type PublishRequest struct {
	Notes string
	Token string // optional, fetched when empty
}

// WaitRequest zero values fall back to the configured retry count and poll
// interval. A wait always polls at least once: RetryCount <= 0 means "use the
// configured default", not "do not poll".
type WaitRequest struct {
	OperationID  string
	Token        string
	RetryCount   int
	PollInterval time.Duration
}

type Outcome string

const (
	OutcomeSucceeded Outcome = "Succeeded"
	// OutcomeTimedOut means every poll saw InProgress.
	OutcomeTimedOut Outcome = "TimedOut"
)

type WaitResult struct {
	Outcome  Outcome
	Message  string
	Attempts int
	// Last is the last operation payload received.
	Last *Operation
}
