package inbound

import (
	"generate-briefing-video/domain"
)

// ScriptComposerPort composes the narration script. Pure and
// deterministic: the same briefing always yields the same script.
type ScriptComposerPort interface {
	Compose(briefing domain.Briefing) string
}
