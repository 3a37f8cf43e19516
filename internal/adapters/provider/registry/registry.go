package registry

import (
	"sort"
	"sync"

	"github.com/longduongbao29/Translator-app/internal/ports"
)

// Registry holds named Translator implementations.
type Registry struct {
	mu          sync.RWMutex
	translators map[string]ports.Translator
}

func New() *Registry {
	return &Registry{translators: make(map[string]ports.Translator)}
}

func (r *Registry) Register(name string, t ports.Translator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.translators[name] = t
}

func (r *Registry) Get(name string) (ports.Translator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.translators[name]
	return t, ok
}

// Names returns the registered engine names sorted for stable output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.translators))
	for name := range r.translators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
