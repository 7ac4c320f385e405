package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Kind names a registered backend, e.g. "null" or "mpv".
type Kind string

// Factory creates an uninitialised backend.
type Factory func() Backend

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Kind]Factory)
)

// Register makes a backend available by kind. It panics when called twice for one kind or with
// a nil factory; adapters call it from init.
func Register(kind Kind, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if _, dup := factories[kind]; dup {
		panic("backend: Register called twice for " + string(kind))
	}
	factories[kind] = factory
}

func Lookup(kind Kind) (Factory, error) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownKind, kind, kindsLocked())
	}
	return factory, nil
}

// Kinds returns the registered kinds, sorted.
func Kinds() []Kind {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return kindsLocked()
}

func kindsLocked() []Kind {
	kinds := lo.Keys(factories)
	slices.Sort(kinds)
	return kinds
}
