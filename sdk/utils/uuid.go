package utils

import (
	"github.com/google/uuid"
	"strings"
)

func UUIDv4NoDash() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// ShortID is a short random id for correlating log lines of one submission.
func ShortID() string {
	return UUIDv4NoDash()[:8]
}
