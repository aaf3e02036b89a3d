// README: Simulated booking confirmations; no payment, no inventory.
package booking

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyReference = errors.New("itinerary reference is required")

// Confirmation is a simulated booking receipt.
type Confirmation struct {
	Code         string    `json:"confirmation_code"`
	ItineraryRef string    `json:"itinerary_ref"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}

// Service issues confirmation codes. Confirming the same itinerary twice
// returns the original confirmation.
type Service struct {
	mu            sync.Mutex
	confirmations map[string]Confirmation
}

func NewService() *Service {
	return &Service{confirmations: make(map[string]Confirmation)}
}

// Confirm simulates booking the referenced itinerary.
func (s *Service) Confirm(itineraryRef string) (Confirmation, error) {
	itineraryRef = strings.TrimSpace(itineraryRef)
	if itineraryRef == "" {
		return Confirmation{}, ErrEmptyReference
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.confirmations[itineraryRef]; ok {
		return c, nil
	}

	c := Confirmation{
		Code:         newCode(),
		ItineraryRef: itineraryRef,
		ConfirmedAt:  time.Now(),
	}
	s.confirmations[itineraryRef] = c
	return c, nil
}

// newCode derives a short human-readable code from a UUID.
func newCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "VY-" + raw[:8]
}
