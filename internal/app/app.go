package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skilltrail/internal/events"
	"skilltrail/internal/store"
	"skilltrail/pkg/ai"
	"skilltrail/pkg/domain"
	"skilltrail/pkg/roadmap"
	"skilltrail/pkg/storage"
)

// Title given to roadmaps requested without one.
const defaultRoadmapTitle = "Untitled"

const defaultGenerateTimeout = 60 * time.Second

// EventPublisher emits activity events; implemented by events.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL     string
	Store           store.Store
	Generator       ai.TextGenerator
	Archive         storage.ReplyArchive // optional
	Events          EventPublisher       // optional
	GenerateTimeout time.Duration
}

// App is the core application service wiring the generation pipeline and
// roadmap persistence together.
type App struct {
	store           store.Store
	generator       ai.TextGenerator
	archive         storage.ReplyArchive
	events          EventPublisher
	generateTimeout time.Duration
}

// New constructs the application. A Store in Config overrides DatabaseURL;
// archive and events stay nil when not configured.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("text generator required")
	}
	timeout := cfg.GenerateTimeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &App{
		store:           dataStore,
		generator:       cfg.Generator,
		archive:         cfg.Archive,
		events:          cfg.Events,
		generateTimeout: timeout,
	}, nil
}

// Generate builds the prompt, calls the generative service, normalizes the
// reply, and persists the resulting roadmap. An upstream failure surfaces as
// ErrUpstreamUnavailable and nothing is saved; an unparseable reply is not a
// failure, the roadmap is saved in the raw variant so the interaction is
// never lost.
func (a *App) Generate(ctx context.Context, ownerID, title, proficiency string) (domain.Roadmap, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.Roadmap{}, fmt.Errorf("owner ID required")
	}
	prompt := roadmap.BuildPrompt(title, proficiency)
	callCtx, cancel := context.WithTimeout(ctx, a.generateTimeout)
	defer cancel()
	reply, err := a.generator.GenerateText(callCtx, prompt)
	if err != nil {
		return domain.Roadmap{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var content domain.Content
	if strings.TrimSpace(reply.Text) == "" {
		// Nothing extractable: keep the verbatim body so the interaction
		// can still be inspected.
		content = domain.Content{RawText: reply.RawBody}
	} else {
		content = roadmap.Normalize(reply.Text)
	}

	if strings.TrimSpace(title) == "" {
		title = defaultRoadmapTitle
	}
	now := time.Now().UTC()
	rm := domain.Roadmap{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Progress:  roadmap.Progress(content.Steps),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.CreateRoadmap(rm); err != nil {
		return domain.Roadmap{}, fmt.Errorf("save roadmap: %w", err)
	}
	a.afterGenerate(ctx, rm, reply.RawBody)
	return rm, nil
}

// afterGenerate archives the raw reply for degraded roadmaps and publishes
// the creation event. Best effort: failures are logged, never surfaced.
func (a *App) afterGenerate(ctx context.Context, rm domain.Roadmap, rawBody string) {
	g, gctx := errgroup.WithContext(ctx)
	if a.archive != nil && rm.Content.IsRaw() && rawBody != "" {
		g.Go(func() error {
			key := "raw-replies/" + rm.ID + ".json"
			if err := a.archive.Put(gctx, key, strings.NewReader(rawBody), int64(len(rawBody)), "application/json"); err != nil {
				slog.Warn("archive raw reply", "roadmap_id", rm.ID, "err", err)
			}
			return nil
		})
	}
	if a.events != nil {
		g.Go(func() error {
			a.publish(gctx, events.RoadmapCreated, rm)
			return nil
		})
	}
	_ = g.Wait()
}

// List returns the owner's roadmaps newest-first.
func (a *App) List(ownerID string) ([]domain.Roadmap, error) {
	list, err := a.store.ListRoadmaps(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	return list, nil
}

// ToggleStep flips the completion flag of one step and recomputes progress
// from the full updated step list. It never inserts, removes, or reorders
// steps; a raw-variant roadmap has no steps, so every index is invalid.
func (a *App) ToggleStep(ctx context.Context, ownerID, id string, stepIndex int) (domain.Roadmap, error) {
	rm, ok, err := a.store.GetRoadmap(ownerID, id)
	if err != nil {
		return domain.Roadmap{}, fmt.Errorf("get roadmap: %w", err)
	}
	if !ok {
		return domain.Roadmap{}, ErrRoadmapNotFound
	}
	if stepIndex < 0 || stepIndex >= len(rm.Content.Steps) {
		return domain.Roadmap{}, ErrInvalidStepIndex
	}
	rm.Content.Steps[stepIndex].Completed = !rm.Content.Steps[stepIndex].Completed
	progress := roadmap.Progress(rm.Content.Steps)
	updated, ok, err := a.store.UpdateContent(ownerID, id, rm.Content, progress)
	if err != nil {
		return domain.Roadmap{}, fmt.Errorf("update roadmap: %w", err)
	}
	if !ok {
		// Deleted between read and write.
		return domain.Roadmap{}, ErrRoadmapNotFound
	}
	a.publish(ctx, events.RoadmapStepToggled, updated)
	return updated, nil
}

// Delete removes the owner's roadmap. Deleting a roadmap that does not exist
// is success: the operation is idempotent.
func (a *App) Delete(ctx context.Context, ownerID, id string) error {
	if err := a.store.DeleteRoadmap(ownerID, id); err != nil {
		return fmt.Errorf("delete roadmap: %w", err)
	}
	a.publish(ctx, events.RoadmapDeleted, map[string]string{"id": id, "ownerId": ownerID})
	return nil
}

func (a *App) publish(ctx context.Context, event string, payload any) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(ctx, event, payload); err != nil {
		slog.Warn("publish activity event", "event", event, "err", err)
	}
}
