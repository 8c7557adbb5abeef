package bizfindr

import (
	"context"

	"github.com/bizfindr/bizfindr/internal/core/doctor"
)

// RunChecks executes all doctor checks and returns results. With autofix,
// expired KV entries are swept instead of reported.
func (a *App) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(a.Config, configPath),
		doctor.NewServerCheck(a.Client, a.Client.BaseURL()),
		doctor.NewStorageCheck(a.Config.DataDir, a.KV, a.History, autofix),
		doctor.NewToolsCheck(),
	}
	return doctor.RunAll(ctx, checks)
}
