package shutdown

import (
	"sync"
	"testing"
	"time"

	"kids-screentime/internal/logger"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	order *[]string
	name  string
	delay time.Duration
}

func (r *recorder) Shutdown() {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.order = append(*r.order, r.name)
}

func TestManager_ReverseOrderOnce(t *testing.T) {
	var order []string
	m := NewManager(logger.NewNop())
	m.Register("repository", &recorder{order: &order, name: "repository"})
	m.Register("controller", &recorder{order: &order, name: "controller"})
	m.Register("view", &recorder{order: &order, name: "view"})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"view", "controller", "repository"}, order)
	assert.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestManager_StepTimeout(t *testing.T) {
	var order []string
	m := NewManager(logger.NewNop())
	m.stepTimeout = 20 * time.Millisecond
	m.Register("slow", &recorder{order: &order, name: "slow", delay: 500 * time.Millisecond})

	start := time.Now()
	m.Shutdown()

	assert.Less(t, time.Since(start), 400*time.Millisecond)
}
