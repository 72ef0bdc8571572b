package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

// ErrNotFound is returned for lookups of unknown session or record ids.
var ErrNotFound = errors.New("record not found")

// JSONStorage is the file-backed record store used when no database is
// configured. Every mutation is written through to disk. An empty file path
// keeps everything in memory, which the tests rely on.
type JSONStorage struct {
	FilePath string
	mu       sync.RWMutex
	Data     StorageData
}

type StorageData struct {
	Sessions      map[string]*domain.AnalysisSession `json:"sessions"`
	Complaints    map[string]*domain.Complaint       `json:"complaints"`
	AppIdeas      map[string]*domain.AppIdea         `json:"app_ideas"`
	BusinessIdeas map[string]*domain.BusinessIdea    `json:"business_ideas"`
}

func NewJSONStorage(filePath string) (*JSONStorage, error) {
	s := &JSONStorage{
		FilePath: filePath,
		Data: StorageData{
			Sessions:      make(map[string]*domain.AnalysisSession),
			Complaints:    make(map[string]*domain.Complaint),
			AppIdeas:      make(map[string]*domain.AppIdea),
			BusinessIdeas: make(map[string]*domain.BusinessIdea),
		},
	}
	if filePath == "" {
		return s, nil
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}
	if err := s.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*JSONStorage)(nil)

func (s *JSONStorage) loadFromFile() error {
	file, err := os.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(file, &s.Data)
}

// saveToFile must be called with the write lock held.
func (s *JSONStorage) saveToFile() error {
	if s.FilePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.FilePath, data, 0644)
}

// Sessions

func (s *JSONStorage) SaveSession(ctx context.Context, session *domain.AnalysisSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.Data.Sessions[cp.ID] = &cp
	return s.saveToFile()
}

func (s *JSONStorage) GetSession(ctx context.Context, id string) (*domain.AnalysisSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.Data.Sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *session
	return &cp, nil
}

// Complaints

func (s *JSONStorage) SaveComplaint(ctx context.Context, c *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.Data.Complaints[cp.ID] = &cp
	return s.saveToFile()
}

func (s *JSONStorage) ComplaintExists(ctx context.Context, postID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.Data.Complaints {
		if c.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (s *JSONStorage) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.Data.Complaints[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *JSONStorage) ListComplaints(ctx context.Context, source, category string) ([]domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Complaint
	for _, c := range s.Data.Complaints {
		if source != "" && !strings.EqualFold(c.Source, source) {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnalyzedAt.After(out[j].AnalyzedAt) })
	return out, nil
}

func (s *JSONStorage) DeleteComplaint(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Data.Complaints[id]; !ok {
		return ErrNotFound
	}
	delete(s.Data.Complaints, id)
	return s.saveToFile()
}

func (s *JSONStorage) DistinctSources(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var sources []string
	for _, c := range s.Data.Complaints {
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		sources = append(sources, c.Source)
	}
	sort.Strings(sources)
	return sources, nil
}

// App ideas

func (s *JSONStorage) SaveAppIdea(ctx context.Context, a *domain.AppIdea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.Data.AppIdeas[cp.ID] = &cp
	return s.saveToFile()
}

func (s *JSONStorage) AppIdeaExists(ctx context.Context, postID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.Data.AppIdeas {
		if a.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (s *JSONStorage) ListAppIdeas(ctx context.Context) ([]domain.AppIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AppIdea, 0, len(s.Data.AppIdeas))
	for _, a := range s.Data.AppIdeas {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnalyzedAt.After(out[j].AnalyzedAt) })
	return out, nil
}

func (s *JSONStorage) TopAppIdeas(ctx context.Context, limit int) ([]domain.AppIdea, error) {
	out, err := s.ListAppIdeas(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ViabilityScore > out[j].ViabilityScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *JSONStorage) BookmarkedAppIdeas(ctx context.Context) ([]domain.AppIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.AppIdea
	for _, a := range s.Data.AppIdeas {
		if a.Bookmarked {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnalyzedAt.After(out[j].AnalyzedAt) })
	return out, nil
}

func (s *JSONStorage) ToggleBookmark(ctx context.Context, id string) (*domain.AppIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.Data.AppIdeas[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Bookmarked = !a.Bookmarked
	if err := s.saveToFile(); err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

// Business ideas

func (s *JSONStorage) SaveIdea(ctx context.Context, i *domain.BusinessIdea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *i
	s.Data.BusinessIdeas[cp.ID] = &cp
	return s.saveToFile()
}

func (s *JSONStorage) GetIdea(ctx context.Context, id string) (*domain.BusinessIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idea, ok := s.Data.BusinessIdeas[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *idea
	return &cp, nil
}

func (s *JSONStorage) ListIdeas(ctx context.Context, difficulty string, limit int) ([]domain.BusinessIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.BusinessIdea
	for _, i := range s.Data.BusinessIdeas {
		if difficulty != "" && i.Difficulty != difficulty {
			continue
		}
		out = append(out, *i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *JSONStorage) TopIdeas(ctx context.Context, limit int) ([]domain.BusinessIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BusinessIdea, 0, len(s.Data.BusinessIdeas))
	for _, i := range s.Data.BusinessIdeas {
		out = append(out, *i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PotentialScore > out[j].PotentialScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *JSONStorage) DeleteIdea(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Data.BusinessIdeas[id]; !ok {
		return ErrNotFound
	}
	delete(s.Data.BusinessIdeas, id)
	return s.saveToFile()
}

func (s *JSONStorage) Close() {}
