package quiz

import (
	"errors"
	"sync"
	"time"

	"quizgame/internal/entity"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrNoActiveSession      = errors.New("no active quiz session")
	ErrQuizCompleted        = errors.New("quiz completed")
	ErrStaleSubmission      = errors.New("answer submitted for a question that is not current")
)

const DefaultTTL = 30 * time.Minute

type Result struct {
	Score int
	Total int
}

// Manager owns every QuizSession, keyed by an opaque session key.
// Sessions idle for longer than the ttl behave as if they never existed.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entity.QuizSession
	ttl      time.Duration
	now      func() time.Time
}

type ManagerOption func(*Manager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(ttl time.Duration, opts ...ManagerOption) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		sessions: make(map[string]*entity.QuizSession),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins a new attempt under key, replacing any previous one.
func (m *Manager) Start(key string, userID int, questions []entity.Question) (entity.QuizSession, error) {
	if len(questions) == 0 {
		return entity.QuizSession{}, ErrNoQuestionsAvailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := entity.NewQuizSession(key, userID, questions, m.now())
	m.sessions[key] = s
	return s.Snapshot(), nil
}

// lookup returns the live session and slides its expiry. Callers hold m.mu.
func (m *Manager) lookup(key string) (*entity.QuizSession, error) {
	s, ok := m.sessions[key]
	if !ok {
		return nil, ErrNoActiveSession
	}

	now := m.now()
	if s.Expired(now, m.ttl) {
		delete(m.sessions, key)
		return nil, ErrNoActiveSession
	}
	s.LastActivity = now
	return s, nil
}

func (m *Manager) Get(key string) (entity.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(key)
	if err != nil {
		return entity.QuizSession{}, err
	}
	return s.Snapshot(), nil
}

func (m *Manager) State(key string) entity.QuizState {
	s, err := m.Get(key)
	if err != nil {
		return entity.QuizNotStarted
	}
	return s.State()
}

// Current returns the question awaiting an answer, or ErrQuizCompleted once
// the whole set has been answered.
func (m *Manager) Current(key string) (entity.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(key)
	if err != nil {
		return entity.Question{}, err
	}

	q, ok := s.Current()
	if !ok {
		return entity.Question{}, ErrQuizCompleted
	}
	return q, nil
}

// RecordAnswer consumes the current question, adding one point when correct.
// A non-zero questionID must name the current question, otherwise the call
// is rejected with ErrStaleSubmission and nothing changes. With questionID 0
// there is no such guard and repeated calls keep advancing.
func (m *Manager) RecordAnswer(key string, questionID int, correct bool) (entity.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(key)
	if err != nil {
		return entity.QuizSession{}, err
	}

	q, ok := s.Current()
	if !ok {
		return s.Snapshot(), ErrQuizCompleted
	}
	if questionID != 0 && questionID != q.ID {
		return s.Snapshot(), ErrStaleSubmission
	}

	s.Record(correct)
	return s.Snapshot(), nil
}

// Finish returns the tally and forgets the session.
func (m *Manager) Finish(key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(key)
	if err != nil {
		return Result{}, err
	}
	delete(m.sessions, key)

	return Result{Score: s.Score, Total: s.Total()}, nil
}

// Discard drops the session without reporting a result.
func (m *Manager) Discard(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key)
}

// PurgeExpired removes idle sessions and reports how many were dropped.
func (m *Manager) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	purged := 0
	for key, s := range m.sessions {
		if s.Expired(now, m.ttl) {
			delete(m.sessions, key)
			purged++
		}
	}
	return purged
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
