//go:build !linux

package main

import (
	"context"
	"os"
	"time"
)

// pollWatcher compares modification times at a fixed interval.
type pollWatcher struct {
	path     string
	interval time.Duration
	debounce *debouncer
}

func newFileWatcher(path string, cfg WatchConfig, onChange func(string)) (fileWatcher, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &pollWatcher{
		path:     path,
		interval: cfg.PollInterval.Duration,
		debounce: newDebouncer(cfg.Debounce.Duration, onChange),
	}, nil
}

func (w *pollWatcher) Run(ctx context.Context) error {
	var last time.Time
	if info, err := os.Stat(w.path); err == nil {
		last = info.ModTime()
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	defer w.debounce.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil || !info.ModTime().After(last) {
				continue
			}
			last = info.ModTime()
			w.debounce.trigger(w.path)
		}
	}
}

func (w *pollWatcher) Close() error { return nil }
