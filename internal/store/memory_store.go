package store

import (
	"sync"
	"time"

	"skilltrail/pkg/domain"
)

// MemoryStore keeps roadmaps in-process. Used as the test double for the
// application core; the serving path runs on GormStore.
type MemoryStore struct {
	mu       sync.RWMutex
	roadmaps map[string]domain.Roadmap
	order    []string // insertion order of IDs, oldest first
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		roadmaps: make(map[string]domain.Roadmap),
	}
}

// CreateRoadmap stores a roadmap and records insertion order.
func (m *MemoryStore) CreateRoadmap(r domain.Roadmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.roadmaps[r.ID]; !exists {
		m.order = append(m.order, r.ID)
	}
	m.roadmaps[r.ID] = cloneRoadmap(r)
	return nil
}

// ListRoadmaps returns the owner's roadmaps newest-first.
func (m *MemoryStore) ListRoadmaps(ownerID string) ([]domain.Roadmap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Roadmap, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		r, ok := m.roadmaps[m.order[i]]
		if ok && r.OwnerID == ownerID {
			res = append(res, cloneRoadmap(r))
		}
	}
	return res, nil
}

// GetRoadmap retrieves a roadmap scoped to its owner.
func (m *MemoryStore) GetRoadmap(ownerID, id string) (domain.Roadmap, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.roadmaps[id]
	if !ok || r.OwnerID != ownerID {
		return domain.Roadmap{}, false, nil
	}
	return cloneRoadmap(r), true, nil
}

// UpdateContent replaces the content document and derived progress.
func (m *MemoryStore) UpdateContent(ownerID, id string, content domain.Content, progress int) (domain.Roadmap, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roadmaps[id]
	if !ok || r.OwnerID != ownerID {
		return domain.Roadmap{}, false, nil
	}
	r.Content = cloneContent(content)
	r.Progress = progress
	r.UpdatedAt = time.Now().UTC()
	m.roadmaps[id] = r
	return cloneRoadmap(r), true, nil
}

// DeleteRoadmap removes the matching roadmap; no match is a no-op.
func (m *MemoryStore) DeleteRoadmap(ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roadmaps[id]
	if !ok || r.OwnerID != ownerID {
		return nil
	}
	delete(m.roadmaps, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Copies keep callers from mutating stored step slices through returned
// values, matching the isolation a real database gives.
func cloneRoadmap(r domain.Roadmap) domain.Roadmap {
	r.Content = cloneContent(r.Content)
	return r
}

func cloneContent(c domain.Content) domain.Content {
	if c.Steps != nil {
		steps := make([]domain.Step, len(c.Steps))
		copy(steps, c.Steps)
		for i := range steps {
			if steps[i].Resources != nil {
				resources := make([]domain.Resource, len(steps[i].Resources))
				copy(resources, steps[i].Resources)
				steps[i].Resources = resources
			}
		}
		c.Steps = steps
	}
	if c.Projects != nil {
		c.Projects = append([]string(nil), c.Projects...)
	}
	if c.Tips != nil {
		c.Tips = append([]string(nil), c.Tips...)
	}
	return c
}
