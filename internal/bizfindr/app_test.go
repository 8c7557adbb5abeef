package bizfindr

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/config"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/data/db"
	"github.com/bizfindr/bizfindr/internal/devserver"
)

func newTestApp(t *testing.T, fixture *devserver.Fixture) *App {
	t.Helper()

	srv := httptest.NewServer(devserver.New(fixture).Handler())
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Server.BaseURL = srv.URL
	cfg.Refresh.ReloadDelay = 10 * time.Millisecond

	database, err := OpenDB(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	app, err := NewApp(&cfg, database)
	require.NoError(t, err)
	return app
}

func TestNewApp_InvalidLocale(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Stats.Locale = "not a locale"

	database, err := OpenDB(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = NewApp(&cfg, database)
	assert.Error(t, err)
}

func TestOpenDB_RecoversFromCorruption(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	path := filepath.Join(cfg.DataDir, db.FileName)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 128), 0o644))

	database, err := OpenDB(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	backups, err := filepath.Glob(path + ".corrupt.*")
	require.NoError(t, err)
	assert.NotEmpty(t, backups)
}

func TestDashboard_PollWritesStat(t *testing.T) {
	app := newTestApp(t, devserver.NewFixture(1234, 3))
	ctx := context.Background()

	d := app.NewDashboard(ctx)
	d.Updater.Refresh(ctx)

	assert.Equal(t, "1,234 records", d.Doc.Text(d.Doc.ByID(page.IDStatsCount)))
	n, ok := d.State.Count()
	assert.True(t, ok)
	assert.EqualValues(t, 1234, n)
}

func TestDashboard_RefreshReloadsStatAndPersistsBanner(t *testing.T) {
	app := newTestApp(t, devserver.NewFixture(1000, 5))
	ctx := context.Background()

	d := app.NewDashboard(ctx)
	d.Updater.Refresh(ctx)

	b := d.Refresh.Click(ctx)
	require.NotNil(t, b)
	assert.Equal(t, notify.SeveritySuccess, b.Notification().Severity)
	assert.Equal(t, "Data refreshed successfully! Successfully processed 5 records with 0 errors", b.Notification().Message)

	assert.Eventually(t, func() bool {
		return d.Doc.Text(d.Doc.ByID(page.IDStatsCount)) == "1,005 records"
	}, time.Second, 10*time.Millisecond)

	history, err := app.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, b.Notification().Message, history[0].Message)
}

func TestDashboard_RefreshFailureShowsDanger(t *testing.T) {
	fixture := devserver.NewFixture(10, 1)
	fixture.SetFailing(false, true)
	app := newTestApp(t, fixture)

	d := app.NewDashboard(context.Background())
	b := d.Refresh.Click(context.Background())

	require.NotNil(t, b)
	assert.Equal(t, notify.SeverityDanger, b.Notification().Severity)
	assert.Equal(t, "Error: Upstream data source unavailable", b.Notification().Message)
}

func TestDashboard_TabSurvivesRestart(t *testing.T) {
	app := newTestApp(t, devserver.NewFixture(1, 0))
	ctx := context.Background()

	first := app.NewDashboard(ctx)
	require.True(t, first.Tabs.Select(ctx, page.TabNotifications))

	second := app.NewDashboard(ctx)
	assert.Equal(t, page.TabOverview, second.Tabs.Active())
	assert.Equal(t, page.TabNotifications, second.Tabs.Restore(ctx))
	assert.Equal(t, page.TabNotifications, second.Tabs.Active())
}

func TestDashboard_DateInputsClamped(t *testing.T) {
	app := newTestApp(t, devserver.NewFixture(1, 0))
	d := app.NewDashboard(context.Background())

	in := d.Doc.Query(`input[type="date"]`)
	require.NotNil(t, in)
	got, ok := d.Doc.Attr(in, "max")
	assert.True(t, ok)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), got)
}
