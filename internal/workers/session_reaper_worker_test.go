package workers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionReaperWorker(t *testing.T) {
	log := logger.NewForTesting()

	t.Run("reaps idle sessions on tick", func(t *testing.T) {
		sessionService := services.NewSessionService(log, nil, time.Nanosecond)
		session := sessionService.Create(uuid.New())

		worker := NewSessionReaperWorker(sessionService, log, 10*time.Millisecond)
		worker.Start(context.Background())

		require.Eventually(t, func() bool {
			_, err := sessionService.Get(session.ID, session.ManagerID)
			return err != nil
		}, time.Second, 10*time.Millisecond)

		worker.Stop()
	})

	t.Run("stop terminates the loop", func(t *testing.T) {
		sessionService := services.NewSessionService(log, nil, time.Hour)
		worker := NewSessionReaperWorker(sessionService, log, time.Hour)
		worker.Start(context.Background())

		done := make(chan struct{})
		go func() {
			worker.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop in time")
		}
	})

	t.Run("defaults the interval when zero", func(t *testing.T) {
		worker := NewSessionReaperWorker(services.NewSessionService(log, nil, time.Hour), log, 0)
		assert.Equal(t, 5*time.Minute, worker.checkInterval)
	})
}
