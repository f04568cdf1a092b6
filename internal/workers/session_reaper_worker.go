package workers

import (
	"context"
	"time"

	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
)

// SessionReaperWorker periodically drops generation sessions that have been
// idle past their TTL
type SessionReaperWorker struct {
	sessionService *services.SessionService
	logger         *logger.Logger
	checkInterval  time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewSessionReaperWorker creates a new session reaper worker
func NewSessionReaperWorker(
	sessionService *services.SessionService,
	logger *logger.Logger,
	checkInterval time.Duration,
) *SessionReaperWorker {
	if checkInterval == 0 {
		checkInterval = 5 * time.Minute
	}

	return &SessionReaperWorker{
		sessionService: sessionService,
		logger:         logger,
		checkInterval:  checkInterval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start starts the worker in the background
func (w *SessionReaperWorker) Start(ctx context.Context) {
	w.logger.Info("Starting session reaper worker",
		logger.String("interval", w.checkInterval.String()),
	)

	go w.run(ctx)
}

// Stop stops the worker gracefully
func (w *SessionReaperWorker) Stop() {
	w.logger.Info("Stopping session reaper worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info("Session reaper worker stopped")
}

func (w *SessionReaperWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reap()
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *SessionReaperWorker) reap() {
	w.logger.Debug("Checking for idle generation sessions")
	w.sessionService.ReapIdle()
}
