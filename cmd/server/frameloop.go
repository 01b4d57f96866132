package main

import (
	"context"
	"time"

	"arenic/internal/ability"
	"arenic/internal/arenaid"
	"arenic/internal/dispatch"
	"arenic/internal/engine"
	"arenic/internal/grid"
	"arenic/internal/httpapi"
	"arenic/internal/timeline"
)

// noEdges reports every key as unpressed. A headless server has no local
// keyboard, so capture never appends an event in this composition, even
// while a recording started over the command endpoint is active; ghost
// playback is the interesting traffic.
type noEdges struct{}

func (noEdges) JustPressed(dispatch.Key) bool { return false }

// broadcastHandlers fans every dispatched effect out to connected stream
// clients as a JSON event, and bumps the playback counter per kind.
type broadcastHandlers struct {
	hub     *httpapi.Hub
	metrics *httpapi.Metrics
}

type movementPayload struct {
	Entity string      `json:"entity"`
	Arena  arenaid.ID  `json:"arena"`
	Delta  grid.Vector `json:"delta"`
}

func (b broadcastHandlers) ApplyMovement(entity timeline.EntityID, arena arenaid.ID, delta grid.Vector) {
	b.hub.Broadcast("movement", movementPayload{Entity: string(entity), Arena: arena, Delta: delta})
	b.metrics.PlaybackEvents.WithLabelValues("movement").Inc()
}

type abilityPayload struct {
	Entity string     `json:"entity"`
	Arena  arenaid.ID `json:"arena"`
	Id     ability.ID `json:"id"`
}

func (b broadcastHandlers) SpawnAbility(entity timeline.EntityID, arena arenaid.ID, id ability.ID, _ timeline.Target) {
	b.hub.Broadcast("ability", abilityPayload{Entity: string(entity), Arena: arena, Id: id})
	b.metrics.PlaybackEvents.WithLabelValues("ability").Inc()
}

type deathPayload struct {
	Entity string     `json:"entity"`
	Arena  arenaid.ID `json:"arena"`
}

func (b broadcastHandlers) HandleDeath(entity timeline.EntityID, arena arenaid.ID) {
	b.hub.Broadcast("death", deathPayload{Entity: string(entity), Arena: arena})
	b.metrics.PlaybackEvents.WithLabelValues("death").Inc()
}

// runFrameLoop drives the engine at a fixed wall-clock tick until ctx is
// canceled, closing done on exit.
func runFrameLoop(ctx context.Context, eng *engine.Engine, hub *httpapi.Hub, metrics *httpapi.Metrics, done chan<- struct{}) {
	defer close(done)

	const step = 50 * time.Millisecond
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	handlers := broadcastHandlers{hub: hub, metrics: metrics}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := eng.Step(ctx, step, noEdges{}, handlers)
			if err != nil {
				continue
			}
			metrics.ObserveTransitions(result.Changes)
			for arena, crossed := range result.Checkpoints {
				for _, c := range crossed {
					metrics.CheckpointCrossed.WithLabelValues(c.Type.String()).Inc()
					hub.Broadcast("checkpoint", map[string]any{"arena": arena, "type": c.Type.String()})
				}
			}
			for _, chg := range result.Changes {
				hub.Broadcast("transition", chg)
			}
			for _, retry := range result.Retries {
				hub.Broadcast("retry_dialog", retry)
			}
		}
	}
}
