package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"spyglass/internal/logging"
)

// Artifact is one piece of rendered content held in memory until its TTL
// expires or the process exits
type Artifact struct {
	ID        string
	Content   string
	Filename  string
	CreatedAt time.Time
}

// store holds artifacts keyed by unguessable id. Safe for concurrent use.
type store struct {
	mu        sync.RWMutex
	artifacts map[string]*Artifact
}

func newStore() *store {
	return &store{artifacts: make(map[string]*Artifact)}
}

// newID returns a 128-bit random hex id. Guessing one is infeasible, which
// is the only access control on served content.
func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate artifact id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *store) put(content, filename string) (*Artifact, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	a := &Artifact{
		ID:        id,
		Content:   content,
		Filename:  filename,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.artifacts[id] = a
	s.mu.Unlock()

	return a, nil
}

func (s *store) get(id string) (*Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[id]
	return a, ok
}

func (s *store) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.artifacts)
}

func (s *store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = make(map[string]*Artifact)
}

// sweep removes artifacts older than ttl and returns how many were evicted
func (s *store) sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, a := range s.artifacts {
		if a.CreatedAt.Before(cutoff) {
			delete(s.artifacts, id)
			evicted++
		}
	}
	if evicted > 0 {
		logging.Logger.Debug("Swept expired artifacts", "evicted", evicted, "remaining", len(s.artifacts))
	}
	return evicted
}
