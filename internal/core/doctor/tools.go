package doctor

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/bizfindr/bizfindr/pkg/executil"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the browser opener used for search results is
// available on $PATH.
type ToolsCheck struct {
	goos string
}

// NewToolsCheck creates a new tools check for the running platform.
func NewToolsCheck() *ToolsCheck {
	return &ToolsCheck{goos: runtime.GOOS}
}

func (c *ToolsCheck) Name() string {
	return "Dependencies"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	opener, _ := executil.OpenCommand(c.goos, "")
	if path, err := lookPathFunc(opener); err != nil {
		result.Items = append(result.Items, warn(opener, "not found on PATH (required to open search results)"))
	} else {
		result.Items = append(result.Items, pass(opener, path))
	}

	return result
}
