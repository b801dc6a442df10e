//go:build linux

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	inotifyChangeMask = unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_ATTRIB
	inotifyGoneMask   = unix.IN_DELETE_SELF | unix.IN_MOVE_SELF | unix.IN_IGNORED
)

// inotifyWatcher watches a single file with inotify. Editors that replace the
// file on save remove the watch, so it is re-added on the next poll.
type inotifyWatcher struct {
	fd       int
	path     string
	wd       int
	poll     time.Duration
	debounce *debouncer
}

func newFileWatcher(path string, cfg WatchConfig, onChange func(string)) (fileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %w", err)
	}
	w := &inotifyWatcher{
		fd:       fd,
		path:     absPath,
		wd:       -1,
		poll:     cfg.PollInterval.Duration,
		debounce: newDebouncer(cfg.Debounce.Duration, onChange),
	}
	if err := w.addWatch(); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return w, nil
}

func (w *inotifyWatcher) addWatch() error {
	wd, err := unix.InotifyAddWatch(w.fd, w.path, inotifyChangeMask|unix.IN_DELETE_SELF|unix.IN_MOVE_SELF)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.wd = wd
	return nil
}

func (w *inotifyWatcher) Run(ctx context.Context) error {
	buf := make([]byte, (unix.SizeofInotifyEvent+256)*16)
	for {
		select {
		case <-ctx.Done():
			w.debounce.stop()
			return ctx.Err()
		default:
		}

		if w.wd < 0 {
			// 文件被替换后重新添加监听
			if err := w.addWatch(); err == nil {
				w.debounce.trigger(w.path)
			}
		}

		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
				time.Sleep(w.poll)
				continue
			}
			return fmt.Errorf("error reading inotify events: %w", err)
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)
			if int(event.Wd) != w.wd {
				continue
			}
			if event.Mask&inotifyChangeMask != 0 {
				w.debounce.trigger(w.path)
			}
			if event.Mask&inotifyGoneMask != 0 {
				if event.Mask&unix.IN_IGNORED == 0 {
					unix.InotifyRmWatch(w.fd, uint32(w.wd))
				}
				w.wd = -1
			}
		}
	}
}

func (w *inotifyWatcher) Close() error {
	return unix.Close(w.fd)
}
