package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// FileStore keeps the document in a single JSON file on local disk.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string, policy CorruptPolicy, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, codec: newCodec(path, policy, logger)}
}

// Path returns the file backing the slot.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return s.codec.decode(data)
}

// Save replaces the file atomically so readers never see a partial document.
func (s *FileStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.encode(tickets)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
