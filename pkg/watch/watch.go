// Package watch supplements the original REPL's `load` command with a
// change-notification channel: when the file backing a debug session
// changes on disk, a Reload event is queued on the Watcher's channel.
// Nothing here reloads the program; the consumer decides what to do.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventKind distinguishes the reasons a Watcher wakes its consumer.
type EventKind int

const (
	Reload EventKind = iota
	Removed
)

// Event is delivered non-blockingly on the Events() channel.
type Event struct {
	Kind EventKind
	Path string
}

// Watcher watches a single program file for writes, creates, removals
// and renames. Each matching filesystem event queues one Event; bursts
// are not coalesced, and events are dropped while the channel is full.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan Event
	done   chan struct{}
	path   string
	log    *zap.Logger
}

// New starts watching path's parent directory (fsnotify watches
// directories more reliably than bare files across editors that save via
// rename-and-replace) and returns a Watcher whose Events channel receives
// a Reload every time path itself changes.
func New(path string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan Event, 8),
		done:   make(chan struct{}),
		path:   filepath.Clean(path),
		log:    log,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.send(Event{Kind: Reload, Path: w.path})
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.send(Event{Kind: Removed, Path: w.path})
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.log != nil {
				w.log.Warn("watch error", zap.Error(err))
			}
		}
	}
}

// send drops the event rather than blocking the watch goroutine when the
// consumer has fallen behind; a dropped Reload is harmless since the next
// change (or a manual `load`) will supersede it.
func (w *Watcher) send(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// Events returns the channel a debugger controller should drain on each
// tick. It never blocks the sender.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close stops watching and releases the underlying OS resources. It
// blocks until the internal watch goroutine has exited before closing
// the events channel, so no send-on-closed-channel race is possible.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	close(w.events)
	return err
}
