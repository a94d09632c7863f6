package store

import (
	"context"
	"errors"
	"sync"

	"github.com/itzbandhan/sallukobirthday/internal/models"
)

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)

var errClosed = errors.New("store is closed")

type MemoryStore struct {
	mu         sync.RWMutex
	closed     bool
	settings   *models.Settings
	recipients map[string]*models.Recipient // keyed by ID
	bySlug     map[string]string            // slug -> ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipients: make(map[string]*models.Recipient),
		bySlug:     make(map[string]string),
	}
}

func (s *MemoryStore) Settings(ctx context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, ErrNotFound
	}
	settings := *s.settings
	return &settings, nil
}

func (s *MemoryStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}

	copied := *settings
	s.settings = &copied
	return nil
}

func (s *MemoryStore) RecipientBySlug(ctx context.Context, slug string) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	recipient := *s.recipients[id]
	return &recipient, nil
}

func (s *MemoryStore) RecipientByID(ctx context.Context, id string) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipients[id]
	if !ok {
		return nil, ErrNotFound
	}
	recipient := *r
	return &recipient, nil
}

func (s *MemoryStore) ListRecipients(ctx context.Context) ([]*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Recipient, 0, len(s.recipients))
	for _, r := range s.recipients {
		recipient := *r
		out = append(out, &recipient)
	}
	return out, nil
}

func (s *MemoryStore) SaveRecipient(ctx context.Context, r *models.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}

	if holder, ok := s.bySlug[r.Slug]; ok && holder != r.ID {
		return ErrSlugTaken
	}

	// Drop the old slug mapping when an update renames the link.
	if prev, ok := s.recipients[r.ID]; ok && prev.Slug != r.Slug {
		delete(s.bySlug, prev.Slug)
	}

	copied := *r
	s.recipients[r.ID] = &copied
	s.bySlug[r.Slug] = r.ID
	return nil
}

func (s *MemoryStore) DeleteRecipient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}

	r, ok := s.recipients[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.bySlug, r.Slug)
	delete(s.recipients, id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.settings = nil
	s.recipients = nil
	s.bySlug = nil
	return nil
}
