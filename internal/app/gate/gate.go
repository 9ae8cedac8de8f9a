package gate

import (
	"sync"
)

// ModelGate serializes every heavy model invocation in the process. The
// speech-to-text model and the generative model contend for the same
// accelerator, so transcription and answer generation must never run at the
// same time, let alone two of either.
type ModelGate struct {
	mu sync.Mutex
}

// New returns a gate shared by the lifecycle worker and the QA engine.
func New() *ModelGate {
	return &ModelGate{}
}

func (g *ModelGate) Acquire() {
	g.mu.Lock()
}

func (g *ModelGate) Release() {
	g.mu.Unlock()
}
