package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerConcurrentTicks(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(&buf, "analyzing", 50)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Tick()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), tracker.bar.State().CurrentNum)
	tracker.Finish()
}

func TestForTerminalQuiet(t *testing.T) {
	assert.IsType(t, Nop{}, ForTerminal("x", 10, true))
	assert.IsType(t, Nop{}, ForTerminal("x", 1, false))
}
