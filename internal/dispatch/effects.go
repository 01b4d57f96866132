package dispatch

import (
	"arenic/internal/ability"
	"arenic/internal/arenaid"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

// EffectHandlers is the external boundary playback hands decoded events to.
// Implementations live outside the recording/playback core (movement
// application, ability spawning, death handling); the dispatcher never
// interprets an event's consequences itself.
type EffectHandlers interface {
	ApplyMovement(entity timeline.EntityID, arena arenaid.ID, delta grid.Vector)
	SpawnAbility(entity timeline.EntityID, arena arenaid.ID, id ability.ID, target timeline.Target)
	HandleDeath(entity timeline.EntityID, arena arenaid.ID)
}
