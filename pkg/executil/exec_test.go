package executil

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	exec := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := exec.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := exec.Run(ctx, "bizfindr-no-such-command")
		assert.Error(t, err)
	})

	t.Run("command fails", func(t *testing.T) {
		_, err := exec.Run(ctx, "sh", "-c", "echo broken >&2; exit 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantCmd  string
		wantArgs []string
	}{
		{goos: "darwin", wantCmd: "open", wantArgs: []string{"http://x"}},
		{goos: "linux", wantCmd: "xdg-open", wantArgs: []string{"http://x"}},
		{goos: "freebsd", wantCmd: "xdg-open", wantArgs: []string{"http://x"}},
		{goos: "windows", wantCmd: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", "http://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, args := OpenCommand(tt.goos, "http://x")
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOpenURL(t *testing.T) {
	rec := &RecordingExecutor{}
	require.NoError(t, OpenURL(context.Background(), rec, "http://localhost:5000/search?q=bakery"))

	wantCmd, wantArgs := OpenCommand(runtime.GOOS, "http://localhost:5000/search?q=bakery")
	require.Len(t, rec.Recorded(), 1)
	assert.Equal(t, wantCmd, rec.Recorded()[0].Cmd)
	assert.Equal(t, wantArgs, rec.Recorded()[0].Args)

	rec.Reset()
	rec.Errors = map[string]error{wantCmd: errors.New("no display")}
	err := OpenURL(context.Background(), rec, "http://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}
