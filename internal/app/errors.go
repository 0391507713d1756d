package app

import "errors"

var (
	// ErrUpstreamUnavailable indicates the generative service call failed,
	// timed out, or returned a non-success status.
	ErrUpstreamUnavailable = errors.New("generative service unavailable")
	// ErrRoadmapNotFound indicates no roadmap matches the owner and ID.
	ErrRoadmapNotFound = errors.New("roadmap not found")
	// ErrInvalidStepIndex indicates a toggle outside the step list bounds.
	ErrInvalidStepIndex = errors.New("step index out of range")
)
