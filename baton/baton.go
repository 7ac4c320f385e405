// Package baton implements the single-owner token the command supervisor and the event
// dispatcher pass back and forth.
//
// Exactly one identity runs at a time. The supervisor uses Recatch to hand the token to the
// dispatcher mid-job, so an event reaches the frontend before the job goes on, and gets it
// back once the dispatcher releases it.
package baton

import (
	"sync"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// ID identifies a party that can hold the baton.
type ID uuid.UUID

// NewID mints a fresh identity.
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Baton is a mutable ownership record guarded by one mutex/condition pair.
type Baton struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner mo.Option[ID]
	busy  bool
}

// New returns an unowned, idle baton.
func New() *Baton {
	b := &Baton{owner: mo.None[ID]()}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Catch blocks until the baton is idle or already belongs to id, then takes it.
func (b *Baton) Catch(id ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catch(id)
}

func (b *Baton) catch(id ID) {
	for b.busy && !b.ownedBy(id) {
		b.cond.Wait()
	}
	b.owner = mo.Some(id)
	b.busy = true
}

// Release marks the baton idle and wakes the waiters.
func (b *Baton) Release() {
	b.mu.Lock()
	b.busy = false
	b.mu.Unlock()
	b.cond.Broadcast()
}

// Recatch hands the baton from self to target and blocks until it comes back.
// When self does not hold the baton it simply catches it.
func (b *Baton) Recatch(self, target ID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.busy && b.ownedBy(self) {
		b.owner = mo.Some(target)
		b.cond.Broadcast()
	}
	b.catch(self)
}

// Owner returns the last identity that caught the baton, if any.
func (b *Baton) Owner() mo.Option[ID] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owner
}

// Busy reports whether somebody currently holds the baton.
func (b *Baton) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *Baton) ownedBy(id ID) bool {
	owner, ok := b.owner.Get()
	return ok && owner == id
}
