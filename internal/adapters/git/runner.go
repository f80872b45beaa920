package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

const (
	// locateTimeout bounds the cheap repository lookups (rev-parse, remote)
	locateTimeout = 10 * time.Second
	// diffTimeout bounds a full diff generation run
	diffTimeout = 30 * time.Second
	// maxOutputBytes caps subprocess output; exceeding it fails the request
	// instead of truncating silently
	maxOutputBytes = 10 << 20
)

var errOutputLimit = errors.New("git output exceeded the 10MB limit")

// cappedBuffer aborts the subprocess (via cancel) once the output limit is
// reached, so a runaway diff cannot exhaust memory.
type cappedBuffer struct {
	buf      bytes.Buffer
	limit    int
	exceeded bool
	cancel   context.CancelFunc
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.limit {
		b.exceeded = true
		if b.cancel != nil {
			b.cancel()
		}
		return 0, errOutputLimit
	}
	return b.buf.Write(p)
}

// runGit executes git with an explicit argument array (never a shell
// string), cwd set to dir, an inherited environment, and both a timeout and
// an output cap. Returns stdout, stderr, and the execution error.
func runGit(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	stdout := &cappedBuffer{limit: maxOutputBytes, cancel: cancel}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stdout.exceeded {
		return "", stderr.String(), errOutputLimit
	}
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", stderr.String(), context.DeadlineExceeded
	}
	return stdout.buf.String(), stderr.String(), err
}
