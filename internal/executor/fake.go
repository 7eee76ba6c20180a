package executor

import (
	"sync"

	"github.com/choden-dev/ajazz-launchpad/internal/keys"
)

// Fake is an in-memory KeyExecutor that records every sequence it is
// asked to execute, for use in tests.
type Fake struct {
	mu    sync.Mutex
	Calls []keys.Sequence
}

func (f *Fake) Execute(seq keys.Sequence) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, seq)
	return nil
}
