// Package tactics defines the pluggable decision-maker for
// non-interactive sides (spec §4.9). Providers receive an immutable
// view, never the engine's mutable context, so they cannot
// accidentally mutate state and can be driven deterministically in
// tests.
package tactics

//go:generate mockgen -destination=tacticsmock/mock_provider.go -package=tacticsmock -source=tactics.go

import (
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/view"
)

// Provider chooses an intent for actorID given a read-only view of the
// encounter.
type Provider interface {
	ChooseIntent(v view.CombatView, actorID string) intent.Intent
}
