package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"member-auth/internal/model"
)

// MemoryMemberStore is a mutex-guarded in-memory member store with the
// same contract as MemberRepository, including the email uniqueness
// guarantee. It backs unit tests and httptest servers that do not need
// Postgres.
type MemoryMemberStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]model.Member
	byEmail map[string]int64
}

func NewMemoryMemberStore() *MemoryMemberStore {
	return &MemoryMemberStore{
		nextID:  1,
		byID:    map[int64]model.Member{},
		byEmail: map[string]int64{},
	}
}

func (s *MemoryMemberStore) FindByID(_ context.Context, id int64) (model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return model.Member{}, model.ErrMemberNotFound
	}
	return m, nil
}

func (s *MemoryMemberStore) FindByEmail(_ context.Context, email string) (model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return model.Member{}, model.ErrMemberNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryMemberStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[emailKey(email)]
	return ok, nil
}

func (s *MemoryMemberStore) Create(_ context.Context, m model.Member) (model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(m.Email)
	if _, taken := s.byEmail[key]; taken {
		return model.Member{}, model.ErrEmailTaken
	}

	now := time.Now().UTC()
	m.ID = s.nextID
	m.RefreshToken = ""
	m.CreatedAt = now
	m.UpdatedAt = now
	s.nextID++

	s.byID[m.ID] = m
	s.byEmail[key] = m.ID
	return m, nil
}

func (s *MemoryMemberStore) UpdateRefreshToken(_ context.Context, id int64, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return model.ErrMemberNotFound
	}
	m.RefreshToken = refreshToken
	m.UpdatedAt = time.Now().UTC()
	s.byID[id] = m
	return nil
}

func (s *MemoryMemberStore) ClearRefreshToken(_ context.Context, id int64) error {
	return s.UpdateRefreshToken(context.Background(), id, "")
}

func (s *MemoryMemberStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
