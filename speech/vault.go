package speech

import (
	"container/list"
	"sync"
)

// PlaybackStopper halts any in-flight playback for an artifact. The vault
// uses it so a deleted artifact never keeps producing audible output.
type PlaybackStopper interface {
	StopArtifact(id string)
}

// Vault is the in-memory, newest-first collection of artifacts for the
// current session. It is safe for concurrent use and holds nothing across
// process restarts.
type Vault struct {
	mu      sync.RWMutex
	order   *list.List
	items   map[string]*list.Element
	stopper PlaybackStopper
}

// NewVault creates an empty vault.
func NewVault() *Vault {
	return &Vault{
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// SetStopper wires the playback engine so Remove can halt active output.
func (v *Vault) SetStopper(s PlaybackStopper) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopper = s
}

// Add inserts an artifact at the front. Insertion order is synthesis
// completion order; ID uniqueness is the creator's responsibility.
func (v *Vault) Add(a *Artifact) {
	v.mu.Lock()
	defer v.mu.Unlock()

	elem := v.order.PushFront(a)
	v.items[a.ID] = elem
}

// Get returns the artifact with the given ID, if present.
func (v *Vault) Get(id string) (*Artifact, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	elem, ok := v.items[id]
	if !ok {
		return nil, false
	}
	return elem.Value.(*Artifact), true
}

// Remove deletes the artifact with the given ID and stops any playback that
// is active for it. Removing an unknown ID is a silent no-op, so duplicate
// delete events are harmless.
func (v *Vault) Remove(id string) {
	v.mu.Lock()
	elem, ok := v.items[id]
	if ok {
		v.order.Remove(elem)
		delete(v.items, id)
	}
	stopper := v.stopper
	v.mu.Unlock()

	if ok && stopper != nil {
		stopper.StopArtifact(id)
	}
}

// List returns a snapshot of all artifacts, newest first. Later vault
// mutations do not affect a previously returned slice.
func (v *Vault) List() []*Artifact {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]*Artifact, 0, v.order.Len())
	for elem := v.order.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*Artifact))
	}
	return out
}

// Len returns the number of stored artifacts.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order.Len()
}
