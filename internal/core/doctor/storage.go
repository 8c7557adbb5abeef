package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// ExpiredSweeper is the part of the kv store the storage check inspects.
type ExpiredSweeper interface {
	CountExpired(ctx context.Context) (int64, error)
	SweepExpired(ctx context.Context) error
}

// Counter reports how many rows a store holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StorageCheck verifies the data directory and the local stores. With
// autofix it sweeps expired kv entries instead of only reporting them.
type StorageCheck struct {
	dataDir string
	kv      ExpiredSweeper
	history Counter
	autofix bool
}

// NewStorageCheck creates a new storage check.
func NewStorageCheck(dataDir string, kv ExpiredSweeper, history Counter, autofix bool) *StorageCheck {
	return &StorageCheck{dataDir: dataDir, kv: kv, history: history, autofix: autofix}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	result.Items = append(result.Items, c.checkDataDir())

	if c.history != nil {
		n, err := c.history.Count(ctx)
		if err != nil {
			result.Items = append(result.Items, fail("notifications", err.Error()))
		} else {
			result.Items = append(result.Items, pass("notifications", humanize.Comma(n)+" stored"))
		}
	}

	if c.kv != nil {
		result.Items = append(result.Items, c.checkExpired(ctx))
	}

	return result
}

func (c *StorageCheck) checkDataDir() CheckItem {
	info, err := os.Stat(c.dataDir)
	switch {
	case os.IsNotExist(err):
		return warn(c.dataDir, "directory does not exist")
	case err != nil:
		return fail(c.dataDir, fmt.Sprintf("inaccessible: %v", err))
	case !info.IsDir():
		return fail(c.dataDir, "path is not a directory")
	default:
		return pass(c.dataDir, "")
	}
}

func (c *StorageCheck) checkExpired(ctx context.Context) CheckItem {
	n, err := c.kv.CountExpired(ctx)
	if err != nil {
		return fail("kv store", err.Error())
	}
	if n == 0 {
		return pass("kv store", "no expired entries")
	}

	if c.autofix {
		if err := c.kv.SweepExpired(ctx); err != nil {
			return fail("kv store", err.Error())
		}
		return pass("kv store", fmt.Sprintf("swept %d expired entries", n))
	}

	item := warn("kv store", fmt.Sprintf("%d expired entries awaiting sweep", n))
	item.Fixable = true
	return item
}
