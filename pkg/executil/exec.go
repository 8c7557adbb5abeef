// Package executil runs external programs, chiefly the platform URL opener.
package executil

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual programs.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, cmd, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return out, fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// OpenCommand returns the program and arguments that open target with the
// desktop's default handler on goos.
func OpenCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// OpenURL opens target in the user's browser.
func OpenURL(ctx context.Context, e Executor, target string) error {
	cmd, args := OpenCommand(runtime.GOOS, target)
	if _, err := e.Run(ctx, cmd, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}
