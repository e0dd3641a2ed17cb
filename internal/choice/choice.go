// Package choice defines the presentation-neutral descriptor the
// engine offers a decider for one possible intent (spec §4.4). The
// engine produces structured choices only; rendering a display string
// is a consumer/formatter concern.
package choice

import (
	"sort"
	"strings"

	"github.com/ashcrest-forge/encounter-engine/internal/intent"
)

// ActionChoice describes one choice offered to a decider.
type ActionChoice struct {
	UIKey  string
	UIArgs map[string]string
	Intent intent.Intent
}

// New builds an ActionChoice. uiArgs is copied so later mutation by
// the caller cannot leak into the stored choice.
func New(uiKey string, uiArgs map[string]string, in intent.Intent) ActionChoice {
	copied := make(map[string]string, len(uiArgs))
	for k, v := range uiArgs {
		copied[k] = v
	}
	return ActionChoice{UIKey: uiKey, UIArgs: copied, Intent: in}
}

// Label derives a simple display string from UIKey and UIArgs for
// consumers that want a convenience string without writing their own
// formatter. It is always computed, never stored, per spec §4.4.
func (c ActionChoice) Label() string {
	var b strings.Builder
	b.WriteString(c.UIKey)

	if len(c.UIArgs) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(c.UIArgs))
	for k := range c.UIArgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("(")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(c.UIArgs[k])
	}
	b.WriteString(")")
	return b.String()
}
