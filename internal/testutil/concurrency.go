package testutil

import (
	"reflect"
	"sync"
	"time"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// Sleeper is the instance built by the sleeper component.
type Sleeper struct {
	ID       string
	Children []*Sleeper
}

// MockSleeperModule registers a "sleeper" component whose factory sleeps and
// records when each build ran. Sleepers accept nested sleepers as elements.
type MockSleeperModule struct {
	ExecutionTimes map[string]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
	completionChan chan<- string
}

// NewMockSleeperModule creates a new sleeper module for testing.
func NewMockSleeperModule(completionChan chan<- string, sleep time.Duration) *MockSleeperModule {
	return &MockSleeperModule{
		ExecutionTimes: make(map[string]*ExecutionRecord),
		sleepDuration:  sleep,
		completionChan: completionChan,
	}
}

// Record returns the execution record of the sleeper with the given id.
func (m *MockSleeperModule) Record(id string) (*ExecutionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.ExecutionTimes[id]
	return rec, ok
}

// Register implements the registry.Module interface.
func (m *MockSleeperModule) Register(r *registry.Registry) {
	r.MustRegister(&plugin.Descriptor{
		Name: "sleeper",
		Type: reflect.TypeFor[*Sleeper](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{
				plugin.Param[string](plugin.Attr("id").AsRequired()),
				plugin.Param[[]*Sleeper](plugin.Element("sleeper")),
			},
			Fn: func(args []any) (any, error) {
				id := plugin.Arg[string](args, 0)

				startTime := time.Now()
				time.Sleep(m.sleepDuration)
				endTime := time.Now()

				m.mu.Lock()
				m.ExecutionTimes[id] = &ExecutionRecord{Start: startTime, End: endTime}
				m.mu.Unlock()

				if m.completionChan != nil {
					m.completionChan <- id
				}
				return &Sleeper{ID: id, Children: plugin.Arg[[]*Sleeper](args, 1)}, nil
			},
		},
	})
}
