package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/howacademia/internal/events"
	"github.com/mind-engage/howacademia/internal/storage"
)

// Snapshot keys on the persistence surface.
const (
	KeyUsers       = "users"
	KeyCourses     = "courses"
	KeyExams       = "exams"
	KeySubmissions = "examSubmissions"
	KeySessions    = "sessions"
	KeyCurrentUser = "currentUser"
)

// Store is the in-memory system of record. Every read hands out copies;
// mutations go through the methods below and are mirrored to the KV
// surface, one full collection per write.
type Store struct {
	mu sync.RWMutex

	users        []User
	courses      []Course
	exams        []Exam
	submissions  []ExamSubmission
	sessions     []Session
	institutions []Institution
	messages     []Message // not persisted
	current      *User

	kv     storage.KV
	bus    *events.Bus
	logger *slog.Logger
	now    func() time.Time
	newID  func(prefix string) string

	courseCapacity    int
	sessionCapacity   bool
	uniqueSubmissions bool
	seed              bool
}

type Option func(*Store)

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDGenerator replaces the default "<prefix>_<uuid>" ids.
func WithIDGenerator(f func(prefix string) string) Option { return func(s *Store) { s.newID = f } }
func WithLogger(l *slog.Logger) Option                    { return func(s *Store) { s.logger = l } }
func WithBus(b *events.Bus) Option                        { return func(s *Store) { s.bus = b } }

// WithCourseCapacity caps enrolledStudents per course. 0 disables the check.
func WithCourseCapacity(n int) Option { return func(s *Store) { s.courseCapacity = n } }

// WithSessionCapacityCheck makes JoinSession honour maxParticipants.
func WithSessionCapacityCheck(b bool) Option { return func(s *Store) { s.sessionCapacity = b } }

// WithUniqueSubmissions rejects a second submission per (exam, student).
func WithUniqueSubmissions(b bool) Option { return func(s *Store) { s.uniqueSubmissions = b } }

// WithoutSeed starts from whatever the surface holds, with no sample data.
func WithoutSeed() Option { return func(s *Store) { s.seed = false } }

func defaultID(prefix string) string { return prefix + "_" + uuid.NewString() }

// New builds the store and hydrates it from kv (nil kv means no
// persistence surface). Sample users and institutions are reconciled in on
// every start; courses, exams, sessions and submissions are seeded only on
// a cold start or when no courses survived.
func New(ctx context.Context, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: defaultID,
		seed:  true,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.bus == nil {
		s.bus = events.NewBus(s.logger)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := s.load(ctx)
	if s.seed {
		now := s.now()
		s.institutions = sampleInstitutions(now)
		s.reconcileUsers(sampleUsers(now))
		if !loaded || len(s.courses) == 0 {
			s.seedActivity(now)
			s.persistAll(ctx)
		}
	}
	persist(s, ctx, KeyUsers, s.users)
	return s
}

func (s *Store) load(ctx context.Context) bool {
	loaded := false
	loaded = load(s, ctx, KeyUsers, &s.users) || loaded
	loaded = load(s, ctx, KeyCourses, &s.courses) || loaded
	loaded = load(s, ctx, KeyExams, &s.exams) || loaded
	loaded = load(s, ctx, KeySubmissions, &s.submissions) || loaded
	loaded = load(s, ctx, KeySessions, &s.sessions) || loaded
	return loaded
}

// load reads one collection. Missing keys report false; malformed values
// are logged, removed and also report false.
func load[T any](s *Store, ctx context.Context, key string, dst *[]T) bool {
	if s.kv == nil {
		return false
	}
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			s.logger.Warn("snapshot load failed", "key", key, "err", err)
		}
		return false
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("discarding malformed snapshot", "key", key, "err", err)
		if err := s.kv.Remove(ctx, key); err != nil {
			s.logger.Warn("snapshot remove failed", "key", key, "err", err)
		}
		return false
	}
	*dst = v
	return true
}

// persist overwrites one collection snapshot. Failures are logged, never
// returned: the in-memory state stays authoritative.
func persist[T any](s *Store, ctx context.Context, key string, v []T) {
	if s.kv == nil {
		return
	}
	if v == nil {
		v = []T{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("snapshot encode failed", "key", key, "err", err)
		return
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.logger.Warn("snapshot save failed", "key", key, "err", err)
	}
}

func (s *Store) persistAll(ctx context.Context) {
	persist(s, ctx, KeyUsers, s.users)
	persist(s, ctx, KeyCourses, s.courses)
	persist(s, ctx, KeyExams, s.exams)
	persist(s, ctx, KeySubmissions, s.submissions)
	persist(s, ctx, KeySessions, s.sessions)
}

// reconcileUsers appends each sample whose id and email are both unseen
// among the users present before reconciliation.
func (s *Store) reconcileUsers(samples []User) {
	ids := make(map[string]struct{}, len(s.users))
	emails := make(map[string]struct{}, len(s.users))
	for _, u := range s.users {
		ids[u.ID] = struct{}{}
		emails[u.Email] = struct{}{}
	}
	for _, u := range samples {
		if _, ok := ids[u.ID]; ok {
			continue
		}
		if _, ok := emails[u.Email]; ok {
			continue
		}
		s.users = append(s.users, u)
	}
}

// Subscribe registers a change observer; call cancel to detach it.
func (s *Store) Subscribe(h events.Handler) (cancel func()) {
	return s.bus.Subscribe(h)
}

// publish must be called without s.mu held.
func (s *Store) publish(kind events.Kind, ids ...string) {
	s.bus.Publish(events.Event{Kind: kind, IDs: ids, At: s.now()})
}

// ---- current user ----

// CurrentUser returns the logged-in user, falling back to the persisted
// copy. Unreadable persisted data counts as no user and is cleared.
func (s *Store) CurrentUser(ctx context.Context) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return *s.current, true
	}
	if s.kv == nil {
		return User{}, false
	}
	raw, err := s.kv.Get(ctx, KeyCurrentUser)
	if err != nil {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		s.logger.Warn("clearing unreadable current user", "err", err)
		if err := s.kv.Remove(ctx, KeyCurrentUser); err != nil {
			s.logger.Warn("current user remove failed", "err", err)
		}
		return User{}, false
	}
	s.current = &u
	return u, true
}

// SetCurrentUser replaces the logged-in user; nil signs out.
func (s *Store) SetCurrentUser(ctx context.Context, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(ctx, u)
}

func (s *Store) setCurrentLocked(ctx context.Context, u *User) {
	if u == nil {
		s.current = nil
		if s.kv != nil {
			if err := s.kv.Remove(ctx, KeyCurrentUser); err != nil {
				s.logger.Warn("current user remove failed", "err", err)
			}
		}
		return
	}
	cp := *u
	s.current = &cp
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(cp)
	if err != nil {
		s.logger.Error("current user encode failed", "err", err)
		return
	}
	if err := s.kv.Set(ctx, KeyCurrentUser, raw); err != nil {
		s.logger.Warn("current user save failed", "err", err)
	}
}
