package datastore

import (
	"context"
	"fmt"
	"slices"

	"github.com/mind-engage/howacademia/internal/events"
)

func (s *Store) GetSessions(_ context.Context, f SessionFilter) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Session{}
	for _, sess := range s.sessions {
		if f.match(sess) {
			out = append(out, sess.clone())
		}
	}
	return out
}

func (s *Store) GetSessionByID(_ context.Context, id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.sessionIndex(id); i >= 0 {
		return s.sessions[i].clone(), true
	}
	return Session{}, false
}

// CreateSession does not enforce MaxParticipants on the initial list.
func (s *Store) CreateSession(ctx context.Context, in SessionInput) Session {
	sess := Session{
		ID:              s.newID("session"),
		Title:           in.Title,
		Description:     in.Description,
		InstructorID:    in.InstructorID,
		InstructorName:  in.InstructorName,
		CourseID:        in.CourseID,
		ScheduledAt:     in.ScheduledAt,
		Duration:        in.Duration,
		MaxParticipants: in.MaxParticipants,
		Participants:    slices.Clone(in.Participants),
	}
	if sess.Participants == nil {
		sess.Participants = []string{}
	}
	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	persist(s, ctx, KeySessions, s.sessions)
	s.mu.Unlock()

	s.publish(events.SessionCreated, sess.ID)
	return sess.clone()
}

// JoinSession adds userID to the participants once. The capacity check
// only applies with WithSessionCapacityCheck.
func (s *Store) JoinSession(ctx context.Context, sessionID, userID string) error {
	s.mu.Lock()
	i := s.sessionIndex(sessionID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	sess := &s.sessions[i]
	if sess.HasParticipant(userID) {
		s.mu.Unlock()
		return nil
	}
	if s.sessionCapacity && len(sess.Participants) >= sess.MaxParticipants {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", sessionID, ErrCapacityReached)
	}
	sess.Participants = append(sess.Participants, userID)
	persist(s, ctx, KeySessions, s.sessions)
	s.mu.Unlock()

	s.publish(events.SessionJoined, sessionID, userID)
	return nil
}

func (s *Store) sessionIndex(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}
