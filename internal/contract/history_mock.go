package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/costwatch/costwatch/schema"
)

// MockRunRecorder is a mock implementation of RunRecorder for testing.
type MockRunRecorder struct {
	mock.Mock
}

var _ RunRecorder = &MockRunRecorder{} // Compile-time check

// BeginRun implements the RunRecorder interface.
func (m *MockRunRecorder) BeginRun(ctx context.Context, startedAt time.Time, evaluation time.Time) (int64, error) {
	args := m.Called(ctx, startedAt, evaluation)
	return args.Get(0).(int64), args.Error(1)
}

// RecordFindings implements the RunRecorder interface.
func (m *MockRunRecorder) RecordFindings(ctx context.Context, runID int64, findings []schema.Finding) error {
	args := m.Called(ctx, runID, findings)
	return args.Error(0)
}

// FinishRun implements the RunRecorder interface.
func (m *MockRunRecorder) FinishRun(ctx context.Context, runID int64, summary schema.Summary, duration time.Duration) error {
	args := m.Called(ctx, runID, summary, duration)
	return args.Error(0)
}
