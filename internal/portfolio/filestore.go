package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/models"
)

// FileStore keeps one JSON file per user in a directory.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger *logrus.Logger
}

func NewFileStore(dir string, logger *logrus.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create portfolio directory: %w", err)
	}

	return &FileStore{dir: absDir, logger: logger}, nil
}

func (s *FileStore) List(_ context.Context, userID string) ([]models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(userID)
}

func (s *FileStore) Get(_ context.Context, userID, id string) (models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolios, err := s.read(userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	for _, p := range portfolios {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Portfolio{}, ErrNotFound
}

func (s *FileStore) Save(_ context.Context, p *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsert(p.UserID, []*models.Portfolio{p})
}

func (s *FileStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolios, err := s.read(userID)
	if err != nil {
		return err
	}

	kept := portfolios[:0]
	for _, p := range portfolios {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(portfolios) {
		return ErrNotFound
	}
	return s.write(userID, kept)
}

// SaveBatch validates every user file before writing any of them.
func (s *FileStore) SaveBatch(_ context.Context, batch []*models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := make(map[string][]*models.Portfolio)
	for _, p := range batch {
		if !ValidUserID(p.UserID) {
			return fmt.Errorf("portfolio %s: %w", p.ID, ErrInvalidUser)
		}
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	for userID, portfolios := range byUser {
		if err := s.upsert(userID, portfolios); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOutputs rewrites each affected user file once. Portfolios that were deleted or
// modified after the snapshot are left alone.
func (s *FileStore) UpdateOutputs(_ context.Context, updates []OutputUpdate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := make(map[string][]OutputUpdate)
	for _, u := range updates {
		if !ValidUserID(u.UserID) {
			return 0, fmt.Errorf("portfolio %s: %w", u.ID, ErrInvalidUser)
		}
		byUser[u.UserID] = append(byUser[u.UserID], u)
	}

	written := 0
	for userID, userUpdates := range byUser {
		portfolios, err := s.read(userID)
		if err != nil {
			return written, err
		}

		index := make(map[string]int, len(portfolios))
		for i, p := range portfolios {
			index[p.ID] = i
		}

		changed := 0
		for _, u := range userUpdates {
			i, ok := index[u.ID]
			if !ok || !portfolios[i].UpdatedAt.Equal(u.Snapshot) {
				continue
			}
			output := u.Output
			portfolios[i].Output = &output
			portfolios[i].UpdatedAt = u.UpdatedAt
			changed++
		}
		if changed == 0 {
			continue
		}
		if err := s.write(userID, portfolios); err != nil {
			return written, err
		}
		written += changed
	}
	return written, nil
}

func (s *FileStore) ListWithoutOutput(_ context.Context, limit int) ([]*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio files: %w", err)
	}
	sort.Strings(files)

	pending := make([]*models.Portfolio, 0)
	for _, file := range files {
		userID := strings.TrimSuffix(filepath.Base(file), ".json")
		portfolios, err := s.read(userID)
		if err != nil {
			s.logger.WithError(err).WithField("file", file).Warn("Skipping unreadable portfolio file")
			continue
		}
		for i := range portfolios {
			if portfolios[i].Output != nil {
				continue
			}
			pending = append(pending, &portfolios[i])
			if limit > 0 && len(pending) >= limit {
				return pending, nil
			}
		}
	}
	return pending, nil
}

func (s *FileStore) upsert(userID string, updates []*models.Portfolio) error {
	portfolios, err := s.read(userID)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(portfolios))
	for i, p := range portfolios {
		index[p.ID] = i
	}
	for _, p := range updates {
		if i, ok := index[p.ID]; ok {
			portfolios[i] = *p
			continue
		}
		index[p.ID] = len(portfolios)
		portfolios = append(portfolios, *p)
	}
	return s.write(userID, portfolios)
}

func (s *FileStore) path(userID string) (string, error) {
	if !ValidUserID(userID) {
		return "", ErrInvalidUser
	}
	return filepath.Join(s.dir, userID+".json"), nil
}

// read returns the portfolios of a user; a missing file is an empty list.
func (s *FileStore) read(userID string) ([]models.Portfolio, error) {
	path, err := s.path(userID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Portfolio{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var portfolios []models.Portfolio
	if err := json.Unmarshal(data, &portfolios); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file: %w", err)
	}
	if portfolios == nil {
		portfolios = []models.Portfolio{}
	}
	return portfolios, nil
}

// write replaces the user file through a temporary file and rename.
func (s *FileStore) write(userID string, portfolios []models.Portfolio) error {
	path, err := s.path(userID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(portfolios, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode portfolios: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace portfolio file: %w", err)
	}
	return nil
}
