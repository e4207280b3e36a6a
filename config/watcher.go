package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// PromptWatcher reloads prompt overrides when their files change on disk.
//
// The parent directories are watched rather than the files themselves:
// editors and orchestrators usually replace files by renaming a temp file
// over them, which invalidates a file-level watch. Because a directory
// event does not say which watched file really changed, the watcher keeps
// a content hash per file and fires onChange only when a hash moves.
// Override files are optional; a file that appears later is picked up on
// its first write, and a removed file keeps its last known content active.
type PromptWatcher struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	hashes  map[string]string
}

// WatchPrompts starts watching the given override files (empty entries are
// ignored) and invokes onChange after any of them changes content. Close
// must be called to release the underlying watcher.
func WatchPrompts(paths []string, onChange func(), logger *zap.Logger) (*PromptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating prompt watcher: %w", err)
	}
	p := &PromptWatcher{
		watcher: watcher,
		logger:  logger,
		hashes:  make(map[string]string),
	}

	watchedDirs := make(map[string]bool)
	for _, path := range paths {
		if path == "" {
			continue
		}
		// Missing files hash to "" so their first appearance counts as a change.
		if h, err := hashFile(path); err == nil {
			p.hashes[path] = h
		} else {
			p.hashes[path] = ""
		}
		dir := filepath.Dir(path)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("error watching prompt directory %s: %w", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	go p.run(onChange)
	return p, nil
}

// Close stops the watcher. The reload goroutine exits once the event
// channels drain.
func (p *PromptWatcher) Close() error {
	return p.watcher.Close()
}

func (p *PromptWatcher) run(onChange func()) {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			changed := false
			for path, previous := range p.hashes {
				if modified, newHash := p.isModified(path, previous); modified {
					p.hashes[path] = newHash
					changed = true
				}
			}
			if changed {
				onChange()
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Prompt watcher error", zap.Error(err))
		}
	}
}

// isModified reports whether the file content differs from the previous
// hash. A file that cannot be read keeps its last known version.
func (p *PromptWatcher) isModified(path, previousHash string) (bool, string) {
	hash, err := hashFile(path)
	if err != nil {
		if previousHash != "" {
			p.logger.Warn("Prompt file has been removed, using the last known version",
				zap.String("file", path))
		}
		return false, ""
	}
	return hash != previousHash, hash
}

// hashFile returns the SHA256 hash of the file content.
func hashFile(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
