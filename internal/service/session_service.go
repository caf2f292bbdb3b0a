package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

// SessionService tracks per-session inactivity. A session is Active while
// requests keep arriving, enters Warning after the idle timeout, and
// expires once the warning countdown runs out. This is a best-effort
// convenience gate: token acceptance itself is governed only by JWT expiry.
type SessionService struct {
	idleTimeout   time.Duration
	warningWindow time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewSessionService constructs the inactivity tracker.
func NewSessionService(idleTimeout, warningWindow time.Duration, logger *zap.Logger) *SessionService {
	if idleTimeout <= 0 {
		idleTimeout = 50 * time.Second
	}
	if warningWindow <= 0 {
		warningWindow = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		idleTimeout:   idleTimeout,
		warningWindow: warningWindow,
		logger:        logger,
		now:           time.Now,
		lastSeen:      make(map[string]time.Time),
	}
}

// Touch registers a qualifying input event for the session, returning it
// to Active. Touching an expired session revives it; the warning countdown
// is cancelled implicitly because state is derived from the last event.
func (s *SessionService) Touch(sessionID string) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	s.lastSeen[sessionID] = s.now()
	s.mu.Unlock()
}

// State reports where the session sits in the inactivity state machine.
// Unknown sessions count as expired.
func (s *SessionService) State(sessionID string) models.SessionState {
	s.mu.Lock()
	seen, ok := s.lastSeen[sessionID]
	s.mu.Unlock()

	if !ok {
		return models.SessionState{State: models.SessionExpired}
	}

	idle := s.now().Sub(seen)
	state := models.SessionState{IdleSeconds: int(idle.Seconds())}
	switch {
	case idle < s.idleTimeout:
		state.State = models.SessionActive
	case idle < s.idleTimeout+s.warningWindow:
		state.State = models.SessionWarning
		state.CountdownSeconds = int((s.idleTimeout + s.warningWindow - idle).Seconds())
	default:
		state.State = models.SessionExpired
	}
	return state
}

// Expired reports whether the session has run past warning into expiry.
func (s *SessionService) Expired(sessionID string) bool {
	return s.State(sessionID).State == models.SessionExpired
}

// Forget drops a session, used on logout.
func (s *SessionService) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.lastSeen, sessionID)
	s.mu.Unlock()
}

// Sweep prunes sessions idle beyond expiry and returns how many were
// removed. Run it periodically to keep the map bounded.
func (s *SessionService) Sweep() int {
	cutoff := s.now().Add(-(s.idleTimeout + s.warningWindow))
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.lastSeen, id)
			removed++
		}
	}
	return removed
}
