// Package journal relays whiteboard messages through a shared directory.
//
// Every process writes its messages below a directory named after its origin
// id. Peers watch the whole tree and pick up files written by other origins.
// Pointing several boards at a synced folder is enough to keep them in step.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/idgen"
	"tableflip.dev/whiteboard/pkg/protocol"
)

// Option customises Open.
type Option func(*Journal)

// WithOrigin overrides the generated origin id. Dashes are removed because
// they separate the origin from the sequence number in keys.
func WithOrigin(origin string) Option {
	return func(j *Journal) {
		if origin = strings.ReplaceAll(origin, "-", ""); origin != "" {
			j.origin = origin
		}
	}
}

// Journal is a protocol.Transport backed by diskv files.
type Journal struct {
	d        *diskv.Diskv
	basePath string
	origin   string

	mu  sync.Mutex
	seq uint64
}

// Open prepares the journal directory at basePath.
func Open(basePath string, opts ...Option) (*Journal, error) {
	if basePath == "" {
		return nil, errors.New("journal: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("journal: ensure base path: %w", err)
	}
	j := &Journal{
		basePath: basePath,
		origin:   strings.ReplaceAll(idgen.UUID{}.NewID(), "-", ""),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.d = diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	return j, nil
}

// Origin returns the id this journal writes under.
func (j *Journal) Origin() string {
	return j.origin
}

// Emit implements protocol.Transport.
func (j *Journal) Emit(event string, msg protocol.Message) error {
	data, err := protocol.Encode(protocol.Envelope{Event: event, Origin: j.origin, Message: msg})
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.seq++
	key := toKey(j.origin, j.seq)
	j.mu.Unlock()
	if err := j.d.Write(key, data); err != nil {
		return fmt.Errorf("journal: write %s: %w", key, err)
	}
	return nil
}

// On implements protocol.Transport. Messages already in the journal when On
// is called are not delivered. handle runs on the watcher goroutine.
func (j *Journal) On(ctx context.Context, handle protocol.Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("journal: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.WithError(err).Debug("journal: watcher close")
			}
		})
	}

	dirs, err := collectDirs(j.basePath)
	if err != nil {
		closeWatcher()
		return fmt.Errorf("journal: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return fmt.Errorf("journal: watch %s: %w", dir, err)
		}
	}

	seen := make(map[string]struct{})
	for key := range j.d.Keys(ctx.Done()) {
		seen[key] = struct{}{}
	}

	go func() {
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[filepath.Clean(dir)] = struct{}{}
		}

		deliver := func(path string) {
			key, ok := j.keyForPath(path)
			if !ok {
				return
			}
			if _, done := seen[key]; done {
				return
			}
			if origin, _ := splitKey(key); origin == j.origin {
				seen[key] = struct{}{}
				return
			}
			data, err := j.read(key)
			if err != nil {
				log.WithError(err).WithField("key", key).Debug("journal: read")
				return
			}
			env, err := protocol.Decode(data)
			if err != nil {
				// Possibly a partial write; the next write event retries.
				log.WithError(err).WithField("key", key).Debug("journal: decode")
				return
			}
			seen[key] = struct{}{}
			handle(env.Message)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("journal: watcher error")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						// A new peer: watch its directory and pick up anything
						// it wrote before the watch was in place.
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								log.WithError(err).WithField("dir", absDir).Warn("journal: watch")
							} else {
								watched[absDir] = struct{}{}
							}
						}
						entries, _ := os.ReadDir(absDir)
						for _, entry := range entries {
							if !entry.IsDir() {
								deliver(filepath.Join(absDir, entry.Name()))
							}
						}
						continue
					}
				}
				deliver(evt.Name)
			}
		}
	}()
	return nil
}

// read bypasses the diskv cache so a partially written file is re-read.
func (j *Journal) read(key string) ([]byte, error) {
	rc, err := j.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// keyForPath maps a file below the base path back to its diskv key.
func (j *Journal) keyForPath(path string) (string, bool) {
	rel, err := filepath.Rel(j.basePath, path)
	if err != nil {
		return "", false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.HasPrefix(parts[1], ".") {
		return "", false
	}
	return pathToKeyTransform(&diskv.PathKey{Path: parts[:1], FileName: parts[1]}), true
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `origin-sequence`; the sequence is zero padded so keys sort.
func toKey(origin string, seq uint64) string {
	return fmt.Sprintf("%s-%020d", origin, seq)
}

func splitKey(key string) (origin, seq string) {
	i := strings.LastIndex(key, "-")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}
