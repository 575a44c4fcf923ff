package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/worldcup/stats-api/internal/models"
)

// MockClickHouseConn implements the parts of driver.Conn the writers use.
type MockClickHouseConn struct {
	driver.Conn
	batch *MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	return m.batch, nil
}

// MockBatch records how a batch was finished.
type MockBatch struct {
	driver.Batch
	AppendErr error
	appended  int
	sent      bool
	aborted   bool
}

func (m *MockBatch) Append(v ...interface{}) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.appended++
	return nil
}

func (m *MockBatch) Send() error {
	m.sent = true
	return nil
}

func (m *MockBatch) Abort() error {
	m.aborted = true
	return nil
}

func TestClickHouseWriters(t *testing.T) {
	matches := []models.Match{
		{Year: 1930, Stage: "Group 1", HomeTeam: "France", AwayTeam: "Mexico", HomeGoals: 4, AwayGoals: 1},
		{Year: 1930, Stage: "Final", HomeTeam: "Uruguay", AwayTeam: "Argentina", HomeGoals: 4, AwayGoals: 2},
	}
	tournaments := []models.Tournament{{Year: 1930, Host: "Uruguay", Matches: 18, Goals: 70}}

	tests := []struct {
		name        string
		appendErr   error
		write       func(s *ClickHouseSource) error
		wantErr     bool
		wantSent    bool
		wantAborted bool
	}{
		{
			name:     "Matches sent",
			write:    func(s *ClickHouseSource) error { return s.WriteMatches(context.Background(), matches) },
			wantSent: true,
		},
		{
			name:        "Match append failure aborts",
			appendErr:   errors.New("column type mismatch"),
			write:       func(s *ClickHouseSource) error { return s.WriteMatches(context.Background(), matches) },
			wantErr:     true,
			wantAborted: true,
		},
		{
			name:     "Tournaments sent",
			write:    func(s *ClickHouseSource) error { return s.WriteTournaments(context.Background(), tournaments) },
			wantSent: true,
		},
		{
			name:        "Tournament append failure aborts",
			appendErr:   errors.New("column type mismatch"),
			write:       func(s *ClickHouseSource) error { return s.WriteTournaments(context.Background(), tournaments) },
			wantErr:     true,
			wantAborted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &MockBatch{AppendErr: tt.appendErr}
			src, err := newClickHouseSource(&MockClickHouseConn{batch: batch}, Options{})
			if err != nil {
				t.Fatalf("newClickHouseSource() error = %v", err)
			}

			err = tt.write(src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("write error = %v, wantErr %v", err, tt.wantErr)
			}
			if batch.sent != tt.wantSent || batch.aborted != tt.wantAborted {
				t.Errorf("sent = %v, aborted = %v; want %v, %v", batch.sent, batch.aborted, tt.wantSent, tt.wantAborted)
			}
		})
	}
}
