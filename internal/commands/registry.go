package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds registered actions.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// NewRegistry creates a new action registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds an action to the registry.
// Returns an error if the name is already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}
	r.cmds[name] = c
	return nil
}

// All returns all actions in run order.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.cmds))
	for _, cmd := range r.cmds {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order() != result[j].Order() {
			return result[i].Order() < result[j].Order()
		}
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Enabled returns the actions selected by the parsed flags, in run order.
func (r *Registry) Enabled() []Command {
	var result []Command
	for _, cmd := range r.All() {
		if cmd.Enabled() {
			result = append(result, cmd)
		}
	}
	return result
}

// DefaultRegistry is the global action registry.
var DefaultRegistry = NewRegistry()

// Register adds an action to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
