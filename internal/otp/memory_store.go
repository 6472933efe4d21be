package otp

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// MemoryStore keeps entries in process memory. Expired entries are hidden from
// Get and removed by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
		logger:  logger,
	}
}

// Save ignores ttl; the entry's ExpiresAt decides validity.
func (s *MemoryStore) Save(_ context.Context, phone string, entry Entry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Attempts = 0
	s.entries[phone] = entry
	return nil
}

func (s *MemoryStore) Get(_ context.Context, phone string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok || entry.Expired(s.now()) {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, phone string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok || entry.Expired(s.now()) {
		return 0, ErrNotFound
	}
	entry.Attempts++
	s.entries[phone] = entry
	return entry.Attempts, nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}

// Len returns the number of entries held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops every entry expired at now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for phone, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, phone)
			removed++
		}
	}
	return removed
}

// StartSweeper schedules Sweep every interval. Stop the returned scheduler on shutdown.
func (s *MemoryStore) StartSweeper(interval time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)

	_, err := scheduler.Every(interval).Do(func() {
		if removed := s.Sweep(s.now()); removed > 0 {
			s.logger.Debug("Swept expired otp entries", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	s.logger.Info("OTP sweeper started", zap.Duration("interval", interval))
	return scheduler, nil
}
