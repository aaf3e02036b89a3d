package booking

import (
	"strings"
	"sync"
	"testing"
)

func TestConfirm_CodeFormat(t *testing.T) {
	s := NewService()
	c, err := s.Confirm("itin-123")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !strings.HasPrefix(c.Code, "VY-") {
		t.Errorf("Code = %q, want VY- prefix", c.Code)
	}
	if len(c.Code) != len("VY-")+8 {
		t.Errorf("Code = %q, want 8 characters after prefix", c.Code)
	}
	if c.Code != strings.ToUpper(c.Code) {
		t.Errorf("Code = %q, want uppercase", c.Code)
	}
	if c.ItineraryRef != "itin-123" {
		t.Errorf("ItineraryRef = %q", c.ItineraryRef)
	}
	if c.ConfirmedAt.IsZero() {
		t.Error("ConfirmedAt must be set")
	}
}

func TestConfirm_Idempotent(t *testing.T) {
	s := NewService()
	first, err := s.Confirm("itin-abc")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	second, err := s.Confirm("itin-abc")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated confirmation differs: %+v vs %+v", first, second)
	}

	other, err := s.Confirm("itin-def")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if other.Code == first.Code {
		t.Error("distinct itineraries must get distinct codes")
	}
}

func TestConfirm_EmptyReference(t *testing.T) {
	s := NewService()
	if _, err := s.Confirm("   "); err != ErrEmptyReference {
		t.Errorf("want ErrEmptyReference, got %v", err)
	}
}

func TestConfirm_ConcurrentSameRef(t *testing.T) {
	s := NewService()
	codes := make([]string, 10)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := s.Confirm("itin-race")
			if err != nil {
				t.Error(err)
				return
			}
			codes[i] = c.Code
		}(i)
	}
	wg.Wait()
	for _, c := range codes[1:] {
		if c != codes[0] {
			t.Fatalf("concurrent confirmations produced different codes: %v", codes)
		}
	}
}
