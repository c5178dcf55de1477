package source

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/config/logger"
)

const changesBuffer = 16

// fileListener turns fsnotify events on matching files into changes
type fileListener struct {
	dir     string
	matcher Matcher
	log     logger.Logger
	changes chan Change
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	day     logs.Day
}

func newFileListener(dir string, m Matcher, log logger.Logger) *fileListener {
	return &fileListener{
		dir:     dir,
		matcher: m,
		log:     log,
		changes: make(chan Change, changesBuffer),
	}
}

// StartListening watches the directory tree, replacing any previous watch
func (l *fileListener) StartListening(day logs.Day) error {
	if day.IsZero() {
		return errors.ErrNoDaySelected
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := addDirRecursive(fsw, l.dir, l.matcher, l.log); err != nil {
		fsw.Close()
		return err
	}

	l.fsw = fsw
	l.day = day

	go l.processEvents(fsw)

	l.log.Info().Msgf("Started listening to '%s' for %s", l.dir, day)

	return nil
}

// StopListening releases the watch; safe to call when not listening
func (l *fileListener) StopListening() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
}

// Changes returns the stream of change notifications
func (l *fileListener) Changes() <-chan Change {
	return l.changes
}

func (l *fileListener) stopLocked() {
	if l.fsw == nil {
		return
	}

	l.fsw.Close()
	l.fsw = nil
	l.day = logs.Day{}

	discardPending(l.changes)

	l.log.Info().Msgf("Stopped listening to '%s'", l.dir)
}

// processEvents drains fsw until it is closed
func (l *fileListener) processEvents(fsw *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			l.handleEvent(fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}

			l.log.Error().Err(err).Msg("Listener error")
		}
	}
}

func (l *fileListener) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				l.log.Warn().Err(err).Msgf("Failed to watch new directory: %s", event.Name)
			}

			return
		}
	}

	rel, err := filepath.Rel(l.dir, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") || !l.matcher.Match(rel) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// a closed watcher may still deliver buffered events
	if l.fsw != fsw {
		return
	}

	select {
	case l.changes <- Change{Day: l.day, Files: []string{rel}, At: time.Now()}:
	default:
		l.log.Debug().Msgf("Change buffer full, dropping event for '%s'", rel)
	}
}

// discardPending empties a change buffer so nothing queued for a stopped watch
// reaches the next one
func discardPending(ch chan Change) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// addDirRecursive adds dir and every subdirectory not covered by an ignore glob
func addDirRecursive(fsw *fsnotify.Watcher, dir string, m Matcher, log logger.Logger) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if rel, _ := filepath.Rel(dir, path); rel != "." && m.SkipDir(rel) {
			return filepath.SkipDir
		}

		if err := fsw.Add(path); err != nil {
			log.Warn().Err(err).Msgf("Failed to watch directory: %s", path)
		}

		return nil
	})
}

// isRelevantEvent returns true if the event can change the rows of a file
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
