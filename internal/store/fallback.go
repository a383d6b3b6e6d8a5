package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// FileStore is the fallback tier: a single local file holding a JSON-encoded
// list of participants, read-modify-written on each append. It assumes a
// single concurrent writer per process, enforced with a mutex.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore builds a file-backed fallback store at path. The file is
// created lazily on the first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append adds the participant to the stored list.
func (s *FileStore) Append(ctx context.Context, p participant.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return err
	}
	list = append(list, p)

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode fallback list: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fallback dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write fallback file: %w", err)
	}
	return nil
}

// List returns the stored participants in insertion order. A missing file is
// an empty list.
func (s *FileStore) List(ctx context.Context) ([]participant.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() ([]participant.Participant, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}
	var list []participant.Participant
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode fallback list: %w", err)
	}
	return list, nil
}
