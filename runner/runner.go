package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// stderrTailLimit bounds how much of a failed command's stderr is kept
// in the reported error text.
const stderrTailLimit = 2048

// Run executes command as a shell command line (via "sh -c"), enforcing
// timeout as a hard deadline on the whole attempt.
//
// Run returns nil on exit code 0. Any other outcome — non-zero exit,
// timeout, or a failure to spawn the child at all — returns a non-nil
// error whose message is suitable to store verbatim as a Job's
// ErrorMessage: "timeout", "exit status N", or the spawn failure's
// message, with a trailing stderr tail when available.
func Run(ctx context.Context, command string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timeout%s", tail(stderr.Bytes()))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("exit status %d%s", exitErr.ExitCode(), tail(stderr.Bytes()))
	}

	return fmt.Errorf("spawn failed: %w%s", err, tail(stderr.Bytes()))
}

func tail(stderr []byte) string {
	if len(stderr) == 0 {
		return ""
	}
	if len(stderr) > stderrTailLimit {
		stderr = stderr[len(stderr)-stderrTailLimit:]
	}
	return ": " + string(bytes.TrimSpace(stderr))
}
