// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
)

/* ------------ logging helpers (stderr) ------------ */

var (
	logMu   sync.RWMutex
	verbose bool
	logOut  io.Writer = os.Stderr
)

// SetVerbose enables [DEBUG] lines.
func SetVerbose(v bool) {
	logMu.Lock()
	defer logMu.Unlock()
	verbose = v
}

func IsVerbose() bool {
	logMu.RLock()
	defer logMu.RUnlock()
	return verbose
}

// SetLogOutput redirects log lines, os.Stderr by default.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logOut = w
}

func logf(level, format string, a ...any) {
	logMu.RLock()
	defer logMu.RUnlock()
	fmt.Fprintf(logOut, "[%s] %s\n", level, fmt.Sprintf(format, a...))
}

func Infof(format string, a ...any) {
	logf("INFO", format, a...)
}

func Warnf(format string, a ...any) {
	logf("WARN", format, a...)
}

func Debugf(format string, a ...any) {
	if IsVerbose() {
		logf("DEBUG", format, a...)
	}
}
