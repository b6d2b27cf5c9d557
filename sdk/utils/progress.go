// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"
)

/* ------------ tiny UI helpers for single-line progress ------------ */

type progress struct {
	totalBytes int64
	doneBytes  int64
	spinIdx    int
	lastTick   time.Time
	out        io.Writer
}

var spinner = []rune{'|', '/', '-', '\\'}

func human(n int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func (p *progress) render(force bool) {
	// at most ~10 updates per second
	if !force && time.Since(p.lastTick) < 100*time.Millisecond {
		return
	}
	p.lastTick = time.Now()

	if p.totalBytes > 0 {
		done := min(p.doneBytes, p.totalBytes)
		pct := float64(done) / float64(p.totalBytes) * 100
		fmt.Fprintf(p.out, "\rProgress: %6.2f%% (%s / %s)   ", pct, human(done), human(p.totalBytes))
	} else {
		ch := spinner[p.spinIdx%len(spinner)]
		p.spinIdx++
		fmt.Fprintf(p.out, "\rProgress: [%c] %s sent   ", ch, human(p.doneBytes))
	}
}

type progressReader struct {
	r    io.Reader
	p    *progress
	done bool
}

// NewProgressReader renders a single progress line on the log output while r
// is consumed. total <= 0 shows a spinner instead of a percentage.
func NewProgressReader(r io.Reader, total int64) io.Reader {
	logMu.RLock()
	out := logOut
	logMu.RUnlock()
	return &progressReader{r: r, p: &progress{totalBytes: total, out: out}}
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	pr.p.doneBytes += int64(n)
	pr.p.render(false)
	if err == io.EOF && !pr.done {
		pr.done = true
		pr.p.render(true)
		fmt.Fprintln(pr.p.out)
	}
	return n, err
}
