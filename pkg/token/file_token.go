package token

import (
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileToken is a TokenProvider for a key which is backed by a file.
// This will lookup the value from the file, and will watch the file for
// changes, and re-read when required.
//
// This is typically used when the key is mounted as a secret, allowing it
// to be rotated without restarting the process. Streams that are already
// open keep the key they connected with; the new key is picked up on the
// next reconnect.
type FileToken struct {
	mutex    sync.RWMutex
	token    string
	filename string
	watcher  *fsnotify.Watcher
}

func NewFileToken(filename string) (*FileToken, error) {
	value, err := readToken(filename)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fileToken := &FileToken{
		token:    value,
		filename: filename,
		watcher:  watcher,
	}

	if err := watcher.Add(filename); err != nil {
		watcher.Close()
		return nil, err
	}

	go fileToken.watch()

	return fileToken, nil
}

func readToken(filename string) (string, error) {
	value, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(value))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func (t *FileToken) watch() {
	for {
		select {
		case event, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// A half written or truncated file keeps the previous key.
			if value, err := readToken(t.filename); err == nil {
				t.mutex.Lock()
				t.token = value
				t.mutex.Unlock()
			}
		case _, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (t *FileToken) Token() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.token
}

// Close stops watching the file. The last key read remains available.
func (t *FileToken) Close() error {
	return t.watcher.Close()
}
