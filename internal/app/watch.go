package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/okian/vlaboard/pkg/metrics"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watch rebuilds whenever the sheet at input changes, until ctx is done.
// The parent directory is watched because spreadsheet editors replace files
// on save. Failed rebuilds are logged and the previous build stays published.
func (s *Service) Watch(ctx context.Context, input string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}

	s.logger.Info(ctx, "watching input", logger.String("input", target), logger.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			s.logger.Debug(ctx, "input changed", logger.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			metrics.RecordErrorByComponent("watch", "fsnotify")
			s.logger.Warn(ctx, "watch error", logger.Error(err))

		case <-timer.C:
			if _, err := s.Build(ctx, input); err != nil {
				s.logger.Warn(ctx, "rebuild failed, keeping previous leaderboards", logger.Error(err))
			}
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
