package datastore

import (
	"context"
	"sort"

	"github.com/mind-engage/howacademia/internal/events"
)

// GetMessages returns the session's chat, oldest first.
func (s *Store) GetMessages(_ context.Context, sessionID string) []Message {
	s.mu.RLock()
	out := []Message{}
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CreateMessage keeps chat in memory only; it is never written to the
// persistence surface.
func (s *Store) CreateMessage(_ context.Context, in MessageInput) Message {
	m := Message{
		ID:        s.newID("msg"),
		SessionID: in.SessionID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Content:   in.Content,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()

	s.publish(events.MessageCreated, m.ID, m.SessionID)
	return m
}
