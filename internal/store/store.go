package store

import "skilltrail/pkg/domain"

// Store defines owner-scoped persistence for roadmaps. Every read and write
// takes the owner ID; a roadmap outside that scope behaves as if it does not
// exist.
type Store interface {
	CreateRoadmap(r domain.Roadmap) error
	// ListRoadmaps returns the owner's roadmaps newest-first.
	ListRoadmaps(ownerID string) ([]domain.Roadmap, error)
	GetRoadmap(ownerID, id string) (domain.Roadmap, bool, error)
	// UpdateContent replaces the content document and derived progress in a
	// single row-scoped write. Returns false when no roadmap matches.
	UpdateContent(ownerID, id string, content domain.Content, progress int) (domain.Roadmap, bool, error)
	// DeleteRoadmap removes the matching roadmap; no match is a no-op.
	DeleteRoadmap(ownerID, id string) error
}
