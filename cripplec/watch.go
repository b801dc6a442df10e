package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// fileWatcher reports changes to one file until its context is cancelled.
type fileWatcher interface {
	Run(ctx context.Context) error
	Close() error
}

// debouncer runs onChange once events for a path stop arriving for delay.
// Callbacks never overlap: a trigger that fires while the previous callback
// is still running waits for it.
type debouncer struct {
	delay    time.Duration
	onChange func(string)

	mu    sync.Mutex
	timer *time.Timer
	run   sync.Mutex
}

func newDebouncer(delay time.Duration, onChange func(string)) *debouncer {
	return &debouncer{delay: delay, onChange: onChange}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		d.onChange(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a source file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (tree, sexpr, json, yaml)")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path, format string) error {
	if _, err := a.readSource(path); err != nil {
		return err
	}
	reparse := func(string) {
		a.log.Info("file changed", "path", path)
		forest, err := a.parseFile(cmd, path)
		if err != nil {
			// 解析失败不退出，等待下一次修改
			var reported reportedError
			if !errors.As(err, &reported) {
				renderError(cmd.ErrOrStderr(), err.Error(), a.cfg.Output.Color)
			}
			return
		}
		if err := a.printForest(cmd.OutOrStdout(), forest, format, false); err != nil {
			a.log.Error("print failed", "error", err)
		}
	}

	w, err := newFileWatcher(path, a.cfg.Watch, reparse)
	if err != nil {
		return err
	}
	defer w.Close()

	reparse(path)
	a.log.Info("watching", "path", path, "debounce", a.cfg.Watch.Debounce.Duration)
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
