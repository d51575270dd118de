package theme

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Failure records a scheme that could not be synced.
type Failure struct {
	Name string
	Err  error
}

// SyncReport summarises one Sync run.
type SyncReport struct {
	Written  []string
	Skipped  []string
	Failures []Failure
}

// Syncer mirrors every scheme in a remote listing into a Store.
type Syncer struct {
	Fetcher    Fetcher
	Store      Store
	Log        zerolog.Logger
	ListingURL string
	// Delay is waited between downloads.
	Delay time.Duration
	// Sleep waits for d or until ctx is done. Nil means a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Sync downloads the listing, then fetches, validates and stores each file
// entry as <stem>.yaml. A scheme that fails to download, parse or store is
// recorded in the report and skipped; failing to fetch or parse the listing
// itself, or cancellation of ctx, aborts the run.
func (s *Syncer) Sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	raw, err := s.Fetcher.Fetch(ctx, s.ListingURL)
	if err != nil {
		return report, fmt.Errorf("fetching listing: %w", err)
	}
	entries, err := ParseListing(raw)
	if err != nil {
		return report, err
	}
	s.Log.Info().Int("entries", len(entries)).Str("url", s.ListingURL).Msg("fetched scheme listing")

	fetched := 0
	for _, entry := range entries {
		s.Log.Debug().Str("name", entry.Name).Str("type", entry.Type).Msg("listing entry")
		if !entry.IsFile() {
			report.Skipped = append(report.Skipped, entry.Name)
			continue
		}

		if fetched > 0 && s.Delay > 0 {
			if err := s.sleep(ctx, s.Delay); err != nil {
				return report, err
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fetched++

		name, err := s.syncEntry(ctx, entry)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			s.Log.Warn().Err(err).Str("name", entry.Name).Msg("skipping scheme")
			report.Failures = append(report.Failures, Failure{Name: entry.Name, Err: err})
			continue
		}
		s.Log.Info().Str("file", name).Msg("wrote theme")
		report.Written = append(report.Written, name)
	}
	return report, nil
}

func (s *Syncer) syncEntry(ctx context.Context, entry ListingEntry) (string, error) {
	data, err := s.Fetcher.Fetch(ctx, entry.DownloadURL)
	if err != nil {
		return "", err
	}
	t, err := ParseTheme(data)
	if err != nil {
		return "", err
	}
	s.Log.Debug().
		Str("system", t.System).
		Str("name", t.Name).
		Str("variant", string(t.Variant)).
		Str("author", t.Author).
		Msg("parsed theme")

	out, err := MarshalTheme(t)
	if err != nil {
		return "", err
	}
	name := entry.Stem() + ".yaml"
	if err := s.Store.Write(name, out); err != nil {
		return "", fmt.Errorf("storing %s: %w", name, err)
	}
	return name, nil
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
