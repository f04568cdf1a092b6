package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/builder"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
)

var (
	// ErrSessionNotFound means the session does not exist or was reaped.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionForbidden means the session belongs to another manager.
	ErrSessionForbidden = errors.New("session belongs to another manager")
	// ErrSubmissionInFlight rejects mutations while a generation call is
	// outstanding. The submission itself is not cancellable.
	ErrSubmissionInFlight = errors.New("generation is already in progress")
)

// Session is one manager's generation workspace: the selection builder plus
// the submission state machine. Sessions are private to their owner and
// never shared; reference data sharing happens in the cache, not here.
type Session struct {
	ID        uuid.UUID
	ManagerID uuid.UUID

	mu         sync.Mutex
	builder    *builder.Builder
	state      models.GenerationState
	message    string
	lastActive time.Time
}

// Snapshot returns the externally visible view of the session.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cycles := s.builder.CycleConfigs()
	buildings := s.builder.BuildingIDs()
	if cycles == nil {
		cycles = []models.CycleConfig{}
	}
	if buildings == nil {
		buildings = []string{}
	}

	return models.SessionSnapshot{
		SessionID:       s.ID,
		ManagerID:       s.ManagerID,
		State:           s.state,
		Message:         s.message,
		CycleConfigs:    cycles,
		BuildingDetails: buildings,
	}
}

// mutate runs fn against the builder under the session's state rules:
// nothing may change while a submission is in flight, and touching a
// Succeeded session reopens it as Idle.
func (s *Session) mutate(fn func(*builder.Builder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.GenerationSubmitting {
		return ErrSubmissionInFlight
	}
	if s.state == models.GenerationSucceeded {
		s.state = models.GenerationIdle
		s.message = ""
	}

	s.lastActive = time.Now()
	return fn(s.builder)
}

// ToggleCycle flips a cycle selection.
func (s *Session) ToggleCycle(cycleID string) (selected bool, err error) {
	err = s.mutate(func(b *builder.Builder) error {
		selected = b.ToggleCycle(cycleID)
		return nil
	})
	return selected, err
}

// ToggleBuilding flips a building selection.
func (s *Session) ToggleBuilding(buildingDetailID string) (selected bool, err error) {
	err = s.mutate(func(b *builder.Builder) error {
		selected = b.ToggleBuilding(buildingDetailID)
		return nil
	})
	return selected, err
}

// UpdateCycleConfig applies the provided field edits to a selected cycle.
// Nil fields are left untouched.
func (s *Session) UpdateCycleConfig(cycleID string, durationDays *int, startDate *string, autoCreate *bool) error {
	return s.mutate(func(b *builder.Builder) error {
		if durationDays != nil {
			if err := b.SetDuration(cycleID, *durationDays); err != nil {
				return err
			}
		}
		if startDate != nil {
			if err := b.SetStartDate(cycleID, *startDate); err != nil {
				return err
			}
		}
		if autoCreate != nil {
			if err := b.SetAutoCreate(cycleID, *autoCreate); err != nil {
				return err
			}
		}
		return nil
	})
}

// beginSubmit runs the pre-submission guards and, if they pass, moves the
// session to Submitting and returns the request snapshot. The guards keep
// invalid requests off the network entirely.
func (s *Session) beginSubmit() (models.ScheduleGenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.GenerationSubmitting {
		return models.ScheduleGenerationRequest{}, ErrSubmissionInFlight
	}

	if err := s.builder.Validate(); err != nil {
		return models.ScheduleGenerationRequest{}, err
	}

	s.state = models.GenerationSubmitting
	s.message = ""
	s.lastActive = time.Now()
	return s.builder.Snapshot(), nil
}

// finishSubmit records the submission outcome. Success clears the
// selections; failure preserves them so the manager can retry without
// re-entering everything.
func (s *Session) finishSubmit(succeeded bool, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	s.lastActive = time.Now()
	if succeeded {
		s.builder.Reset()
		s.state = models.GenerationSucceeded
	} else {
		s.state = models.GenerationFailed
	}
}

// idleSince reports the session's last activity.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SessionService owns the in-memory session store. All durable state lives
// behind the facility backend; losing sessions on restart only costs
// unsubmitted selections.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	logger  *logger.Logger
	metrics *metrics.Metrics
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessionService creates a session service.
func NewSessionService(log *logger.Logger, m *metrics.Metrics, idleTTL time.Duration) *SessionService {
	return &SessionService{
		sessions: make(map[uuid.UUID]*Session),
		logger:   log,
		metrics:  m,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Create opens a fresh session for a manager.
func (s *SessionService) Create(managerID uuid.UUID) *Session {
	session := &Session{
		ID:         uuid.New(),
		ManagerID:  managerID,
		builder:    builder.New(s.now),
		state:      models.GenerationIdle,
		lastActive: s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	count := len(s.sessions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(count))
	}

	s.logger.Info("Generation session opened",
		logger.String("session_id", session.ID.String()),
		logger.String("manager_id", managerID.String()),
	)
	return session
}

// Get returns a session, enforcing ownership.
func (s *SessionService) Get(id, managerID uuid.UUID) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.ManagerID != managerID {
		return nil, ErrSessionForbidden
	}
	return session, nil
}

// Close discards a session and its selections.
func (s *SessionService) Close(id, managerID uuid.UUID) error {
	if _, err := s.Get(id, managerID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(count))
	}
	return nil
}

// ReapIdle removes sessions idle longer than the TTL and returns how many
// were dropped.
func (s *SessionService) ReapIdle() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var reaped int
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			reaped++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if reaped > 0 {
		if s.metrics != nil {
			s.metrics.ActiveSessions.Set(float64(count))
		}
		s.logger.Infof("Reaped %d idle generation sessions", reaped)
	}
	return reaped
}
