package mem

import (
	"sync"
	"time"

	"roamio/internal/models/response_models"
)

// ItineraryStore holds generated itinerary sets for later retrieval. This is
// the only session state the service keeps; entries expire on their TTL.
type ItineraryStore interface {
	Put(id string, set *response_models.TripItinerarySet, ttl time.Duration)

	// Get returns the stored set if present and not expired. Expired entries
	// are removed on access.
	Get(id string) (*response_models.TripItinerarySet, bool)
}

type storeEntry struct {
	set       *response_models.TripItinerarySet
	expiresAt time.Time
}

type ItineraryStoreImpl struct {
	mu   sync.RWMutex
	data map[string]storeEntry
}

func NewItineraryStore() *ItineraryStoreImpl {
	return &ItineraryStoreImpl{
		data: make(map[string]storeEntry),
	}
}

func (s *ItineraryStoreImpl) Put(id string, set *response_models.TripItinerarySet, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = storeEntry{
		set:       set,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ItineraryStoreImpl) Get(id string) (*response_models.TripItinerarySet, bool) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return nil, false
	}
	return e.set, true
}
