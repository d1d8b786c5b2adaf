package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/platify/platify-core/internal/logger"
)

// FileStore persists one file per key under a data directory.
//
// Apply is all-or-nothing across keys. The whole batch is first committed to a
// journal file with a single rename, then applied key by key. A failure while
// applying restores the values the batch had overwritten; a crash while applying
// leaves the journal behind and NewFileStore completes the batch from it.
type FileStore struct {
	dir    string
	mu     sync.RWMutex
	closed bool

	rename func(oldpath, newpath string) error
}

// NewFileStore opens (creating if needed) a file store rooted at dir and
// finishes any batch interrupted by a crash
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateDirFailed, err)
	}
	s := &FileStore{dir: dir, rename: os.Rename}
	s.removeStaleTemps()
	if err := s.recover(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRecoverFailed, err)
	}
	return s, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExtension)
}

func (s *FileStore) journalPath() string {
	return filepath.Join(s.dir, journalFile)
}

// Get implements Store
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	return s.read(key)
}

func (s *FileStore) read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s %q: %w", ErrMsgReadFailed, key, err)
	}
	return data, true, nil
}

// Apply implements Store
func (s *FileStore) Apply(ctx context.Context, batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ops := batch.Ops()
	if len(ops) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	undo, err := s.previousValues(ops)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteFailed, err)
	}
	if err := s.writeJournal(ops); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgJournalFailed, err)
	}

	log := logger.FromContext(ctx)
	if applied, err := s.applyOps(ops); err != nil {
		if _, rbErr := s.applyOps(undo[:applied]); rbErr != nil {
			log.Error(LogMsgRollbackFailed, "error", rbErr)
			return fmt.Errorf("%s: %w", ErrMsgWriteFailed, err)
		}
		log.Warn(LogMsgBatchRolledBack, "error", err, "keys", len(ops))
		s.dropJournal(ctx)
		return fmt.Errorf("%s: %w", ErrMsgWriteFailed, err)
	}

	s.dropJournal(ctx)
	return nil
}

// previousValues returns, per op, the op that restores the key's current state
func (s *FileStore) previousValues(ops []Op) ([]Op, error) {
	undo := make([]Op, len(ops))
	for i, op := range ops {
		value, found, err := s.read(op.Key)
		if err != nil {
			return nil, err
		}
		if found {
			undo[i] = Op{Key: op.Key, Value: value}
		} else {
			undo[i] = Op{Key: op.Key, Delete: true}
		}
	}
	return undo, nil
}

// applyOps writes ops in order and reports how many completed before a failure
func (s *FileStore) applyOps(ops []Op) (int, error) {
	for i, op := range ops {
		if op.Delete {
			if err := os.Remove(s.path(op.Key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return i, err
			}
			continue
		}
		if err := s.writeFile(s.path(op.Key), op.Value); err != nil {
			return i, err
		}
	}
	return len(ops), nil
}

func (s *FileStore) writeJournal(ops []Op) error {
	data, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	return s.writeFile(s.journalPath(), data)
}

func (s *FileStore) dropJournal(ctx context.Context) {
	// A leftover journal is replayed on the next open, which rewrites the same values
	if err := os.Remove(s.journalPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Warn(LogMsgFailedToDropJrnl, "error", err)
	}
}

// recover completes the batch recorded in a journal left by a crash
func (s *FileStore) recover() error {
	data, err := os.ReadFile(s.journalPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	ctx := context.Background()
	var ops []Op
	if err := json.Unmarshal(data, &ops); err != nil {
		// The journal only appears through a rename of a fully written file
		logger.FromContext(ctx).Warn(LogMsgJournalCorrupt, "error", err)
		s.dropJournal(ctx)
		return nil
	}
	if _, err := s.applyOps(ops); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgJournalReplayed, "keys", len(ops))
	s.dropJournal(ctx)
	return nil
}

// writeFile replaces dest through a synced temp file and a rename
func (s *FileStore) writeFile(dest string, value []byte) error {
	f, err := os.CreateTemp(s.dir, tempFilePattern)
	if err != nil {
		return err
	}
	name := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(name)
		return err
	}
	if _, err := f.Write(value); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, filePerm); err != nil {
		os.Remove(name)
		return err
	}
	if err := s.rename(name, dest); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func (s *FileStore) removeStaleTemps() {
	matches, err := filepath.Glob(filepath.Join(s.dir, tempFilePattern))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			logger.FromContext(context.Background()).Warn(LogMsgFailedToCleanTemp, "path", m, "error", err)
		}
	}
}

// Keys implements Store
func (s *FileStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}

	keys := make([]string, 0)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExtension))
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
