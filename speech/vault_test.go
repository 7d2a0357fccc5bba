package speech

import (
	"sync"
	"testing"
)

func newTestArtifact(text string) *Artifact {
	return NewArtifact(text, "voice", KindSingleSpeaker, "en-US", SynthesisParams{}, "")
}

// recordingStopper records StopArtifact calls for assertions.
type recordingStopper struct {
	mu      sync.Mutex
	stopped []string
}

func (r *recordingStopper) StopArtifact(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = append(r.stopped, id)
}

func TestVault_OrderingNewestFirst(t *testing.T) {
	vault := NewVault()

	a := newTestArtifact("A")
	b := newTestArtifact("B")
	c := newTestArtifact("C")

	vault.Add(a)
	vault.Add(b)
	vault.Add(c)

	got := vault.List()
	want := []*Artifact{c, b, a}

	if len(got) != len(want) {
		t.Fatalf("List length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("position %d: got %q, want %q", i, got[i].SourceText, want[i].SourceText)
		}
	}
}

func TestVault_RemoveIsIdempotent(t *testing.T) {
	vault := NewVault()
	a := newTestArtifact("A")
	b := newTestArtifact("B")
	vault.Add(a)
	vault.Add(b)

	vault.Remove(a.ID)
	if vault.Len() != 1 {
		t.Fatalf("Len after remove: got %d, want 1", vault.Len())
	}

	// Duplicate delete events must leave the vault unchanged.
	vault.Remove(a.ID)
	vault.Remove("no-such-id")

	if vault.Len() != 1 {
		t.Errorf("Len after repeated removes: got %d, want 1", vault.Len())
	}
	if _, ok := vault.Get(b.ID); !ok {
		t.Error("unrelated artifact lost during remove")
	}
}

func TestVault_RemoveStopsActivePlayback(t *testing.T) {
	vault := NewVault()
	stopper := &recordingStopper{}
	vault.SetStopper(stopper)

	a := newTestArtifact("A")
	vault.Add(a)
	vault.Remove(a.ID)

	if len(stopper.stopped) != 1 || stopper.stopped[0] != a.ID {
		t.Errorf("stopper calls: got %v, want [%s]", stopper.stopped, a.ID)
	}

	// A no-op remove must not trigger another stop.
	vault.Remove(a.ID)
	if len(stopper.stopped) != 1 {
		t.Errorf("stopper called on no-op remove: %v", stopper.stopped)
	}
}

func TestVault_ListIsSnapshot(t *testing.T) {
	vault := NewVault()
	a := newTestArtifact("A")
	vault.Add(a)

	snapshot := vault.List()
	vault.Add(newTestArtifact("B"))
	vault.Remove(a.ID)

	if len(snapshot) != 1 || snapshot[0].ID != a.ID {
		t.Error("earlier snapshot changed by later vault mutation")
	}
}

func TestVault_Get(t *testing.T) {
	vault := NewVault()
	a := newTestArtifact("A")
	vault.Add(a)

	got, ok := vault.Get(a.ID)
	if !ok || got.ID != a.ID {
		t.Errorf("Get(%s): got %v, %v", a.ID, got, ok)
	}
	if _, ok := vault.Get("missing"); ok {
		t.Error("Get returned true for unknown ID")
	}
}
