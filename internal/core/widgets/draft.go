package widgets

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/kv"
	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/pkg/debounce"
)

const (
	draftKey = "draft"
	draftTTL = 24 * time.Hour
)

// SearchDraft saves the search box contents while the user types, so an
// interrupted search can be picked up later. Saves are debounced.
type SearchDraft struct {
	store *kv.TypedKV[string]
	save  *debounce.Debouncer[string]
	log   zerolog.Logger
}

// NewSearchDraft creates a draft saver that writes wait after the last edit.
func NewSearchDraft(store kv.KV, wait time.Duration) *SearchDraft {
	d := &SearchDraft{
		store: kv.Scoped[string](store, "search"),
		log:   logging.Component("search"),
	}
	d.save = debounce.New(wait, d.persist)
	return d
}

// Update records q; only the last value in a burst is written.
func (d *SearchDraft) Update(q string) {
	d.save.Call(q)
}

// Discard drops any pending save and removes the stored draft.
func (d *SearchDraft) Discard(ctx context.Context) {
	d.save.Cancel()
	if err := d.store.Delete(ctx, draftKey); err != nil {
		d.log.Warn().Err(err).Msg("failed to discard search draft")
	}
}

// Load returns the saved draft, or "" when there is none.
func (d *SearchDraft) Load(ctx context.Context) string {
	q, _, err := d.store.Lookup(ctx, draftKey)
	if err != nil {
		d.log.Warn().Err(err).Msg("failed to load search draft")
	}
	return q
}

func (d *SearchDraft) persist(q string) {
	ctx := context.Background()
	if q == "" {
		_ = d.store.Delete(ctx, draftKey)
		return
	}
	if err := d.store.SetTTL(ctx, draftKey, q, draftTTL); err != nil {
		d.log.Warn().Err(err).Msg("failed to save search draft")
	}
}
