package holdsweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingEngine/internal/usecase/release_expired_holds"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type mockReleaser struct {
	mu        sync.Mutex
	responses []*release_expired_holds.Response
	err       error
	calls     int
	limits    []int
}

func (m *mockReleaser) Execute(_ context.Context, req *release_expired_holds.Request) (*release_expired_holds.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.limits = append(m.limits, req.Limit)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &release_expired_holds.Response{}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *mockReleaser) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestSweeper_Sweep(t *testing.T) {
	tests := []struct {
		name      string
		responses []*release_expired_holds.Response
		err       error
		wantCalls int
	}{
		{
			name:      "partial batch stops",
			responses: []*release_expired_holds.Response{{Released: 1}},
			wantCalls: 1,
		},
		{
			name: "full batches continue",
			responses: []*release_expired_holds.Response{
				{Released: 2},
				{Released: 1, Skipped: 1},
				{Released: 1},
			},
			wantCalls: 3,
		},
		{
			name:      "batch of failures is not retried",
			responses: []*release_expired_holds.Response{{Failed: 2}},
			wantCalls: 1,
		},
		{
			name:      "error stops",
			err:       errors.New("redis down"),
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			releaser := &mockReleaser{responses: tt.responses, err: tt.err}
			s := New(releaser, time.Minute, 2, logger.Nop())

			s.Sweep(context.Background())

			assert.Equal(t, tt.wantCalls, releaser.callCount())
			for _, limit := range releaser.limits {
				assert.Equal(t, 2, limit)
			}
		})
	}
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	releaser := &mockReleaser{}
	s := New(releaser, 10*time.Millisecond, 0, logger.Nop())
	assert.Equal(t, defaultBatch, s.batch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return releaser.callCount() > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
