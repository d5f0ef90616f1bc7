// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At boot, cmd/web calls
// Mount, which hands every component its Deps through Init and copies the
// routes of its Routes() router onto the root router.  chi allows only one
// Mount per pattern, so components are walked rather than mounted at "/".

package component

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Initializer receives shared dependencies once, before Routes is called.
type Initializer interface {
	Init(Deps) error
}

// Component contract.
//
// Routes() mounts the component's API endpoints, e.g:
//
//	r := chi.NewRouter()
//	r.Post("/api/leads", c.submit)
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
	Initializer
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every registered component with d and registers its
// routes, with the component's own middleware, on r.
func Mount(r chi.Router, d Deps) error {
	for _, c := range All() {
		if err := c.Init(d); err != nil {
			return fmt.Errorf("component %s: init: %w", c.Name(), err)
		}
		n := 0
		err := chi.Walk(c.Routes(), func(method, route string, h http.Handler, mws ...func(http.Handler) http.Handler) error {
			r.Method(method, route, chi.Chain(mws...).Handler(h))
			n++
			return nil
		})
		if err != nil {
			return fmt.Errorf("component %s: routes: %w", c.Name(), err)
		}
		zap.S().Debugw("component mounted", "name", c.Name(), "routes", n)
	}
	return nil
}
