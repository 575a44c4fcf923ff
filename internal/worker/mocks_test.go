package worker

import (
	"context"
	"sync"

	"github.com/worldcup/stats-api/internal/models"
)

// MockSink records written rows in memory
type MockSink struct {
	mu          sync.Mutex
	Matches     []models.Match
	Tournaments []models.Tournament
	Batches     int

	WriteMatchesErr error
}

func (m *MockSink) EnsureSchema(ctx context.Context) error { return nil }
func (m *MockSink) Reset(ctx context.Context) error        { return nil }

func (m *MockSink) WriteMatches(ctx context.Context, rows []models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteMatchesErr != nil {
		return m.WriteMatchesErr
	}
	m.Batches++
	m.Matches = append(m.Matches, rows...)
	return nil
}

func (m *MockSink) WriteTournaments(ctx context.Context, rows []models.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Batches++
	m.Tournaments = append(m.Tournaments, rows...)
	return nil
}

func (m *MockSink) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Matches), len(m.Tournaments)
}
