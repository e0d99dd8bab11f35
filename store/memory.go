// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
)

// Memory is a process-local store used for demos and tests.
type Memory struct {
	mu       sync.Mutex
	projects []models.Project
	votes    []models.VoteRecord
}

var _ review.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadProjects(_ context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Project{}, m.projects...), nil
}

func (m *Memory) LoadFinalVotes(_ context.Context) ([]models.VoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.VoteRecord, len(m.votes))
	for i, v := range m.votes {
		out[i] = v.Clone()
	}
	return out, nil
}

func (m *Memory) InsertProject(_ context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.projects {
		if existing.Name == p.Name {
			return fmt.Errorf("%w: %q", review.ErrDuplicateProject, p.Name)
		}
	}
	m.projects = append(m.projects, p)
	return nil
}

func (m *Memory) DeleteProject(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	projects := m.projects[:0:0]
	for _, p := range m.projects {
		if p.Name != name {
			projects = append(projects, p)
		}
	}
	m.projects = projects
	m.votes = m.filterVotes(func(v models.VoteRecord) bool { return v.ProjectName != name })
	return nil
}

func (m *Memory) ClearFinalVotes(_ context.Context, project string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes = m.filterVotes(func(v models.VoteRecord) bool { return v.ProjectName != project })
	return nil
}

func (m *Memory) ReplaceFinalVotes(_ context.Context, expert string, votes []models.VoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.filterVotes(func(v models.VoteRecord) bool { return v.ExpertName != expert })
	for _, v := range votes {
		kept = append(kept, v.Clone())
	}
	m.votes = kept
	return nil
}

func (m *Memory) filterVotes(keep func(models.VoteRecord) bool) []models.VoteRecord {
	out := make([]models.VoteRecord, 0, len(m.votes))
	for _, v := range m.votes {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
