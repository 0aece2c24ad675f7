package state

import (
	"sync"
	"time"
)

// ComposeFile is the last known version of one watched compose file.
type ComposeFile struct {
	Path     string
	Data     []byte
	ModTime  time.Time
	Err      error
	Revision int
}

type ComposeStore interface {
	Entries() []ComposeFile
	Entry(path string) (ComposeFile, bool)
	Set(ComposeFile) ComposeFile
}

type composeStore struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]ComposeFile
}

// NewComposeStore returns a store that lists files in the order given and
// appends any others as they are first set.
func NewComposeStore(paths []string) ComposeStore {
	s := &composeStore{entries: make(map[string]ComposeFile, len(paths))}
	for _, path := range paths {
		if _, ok := s.entries[path]; ok {
			continue
		}
		s.order = append(s.order, path)
		s.entries[path] = ComposeFile{Path: path}
	}
	return s
}

func (s *composeStore) Entries() []ComposeFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ComposeFile, 0, len(s.order))
	for _, path := range s.order {
		out = append(out, cloneComposeFile(s.entries[path]))
	}
	return out
}

func (s *composeStore) Entry(path string) (ComposeFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.entries[path]
	return cloneComposeFile(f), ok
}

// Set records a new version of the file and bumps its revision.
func (s *composeStore) Set(f ComposeFile) ComposeFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.entries[f.Path]
	if !ok {
		s.order = append(s.order, f.Path)
	}
	f = cloneComposeFile(f)
	f.Revision = prev.Revision + 1
	s.entries[f.Path] = f
	return cloneComposeFile(f)
}

func cloneComposeFile(f ComposeFile) ComposeFile {
	if f.Data != nil {
		f.Data = append([]byte(nil), f.Data...)
	}
	return f
}
