package session

import (
	"sync"
	"testing"
	"time"
)

func TestAcquire_CreatesAndReuses(t *testing.T) {
	m := NewManager(time.Minute)

	s1, release := m.Acquire("abc")
	release()
	s2, release := m.Acquire("abc")
	release()
	if s1 != s2 {
		t.Error("same id must return the same session")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}

	s3, release := m.Acquire("")
	release()
	if s3.ID == "" {
		t.Error("empty id must be assigned a fresh one")
	}
	if s3 == s1 {
		t.Error("generated id must be a distinct session")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestAcquire_SerializesTurns(t *testing.T) {
	m := NewManager(time.Minute)
	const turns = 50

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, release := m.Acquire("same")
			defer release()
			// Unsynchronized read-modify-write; only the turn lock protects it.
			counter++
			s.ChosenMethod = "train"
		}()
	}
	wg.Wait()
	if counter != turns {
		t.Errorf("counter = %d, want %d (turns overlapped)", counter, turns)
	}
}

func TestRelease_DropsSession(t *testing.T) {
	m := NewManager(time.Minute)
	s, release := m.Acquire("abc")
	release()
	m.Release(s.ID)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	s2, release := m.Acquire("abc")
	release()
	if s2 == s {
		t.Error("released session must not be resurrected")
	}
}

func TestSweep_EvictsIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)

	stale, release := m.Acquire("stale")
	release()
	stale.UpdatedAt = time.Now().Add(-time.Minute)

	fresh, release := m.Acquire("fresh")
	release()
	fresh.Touch()

	m.sweep()
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	got, release := m.Acquire("fresh")
	release()
	if got != fresh {
		t.Error("fresh session must survive the sweep")
	}
}
