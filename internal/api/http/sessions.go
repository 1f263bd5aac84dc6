package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

// GET /sessions?instructor_id=&student_id=
func ListSessionsHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		respondJSON(w, http.StatusOK, store.GetSessions(r.Context(), datastore.SessionFilter{
			InstructorID: q.Get("instructor_id"),
			StudentID:    q.Get("student_id"),
		}))
	}
}

// GET /sessions/{id}
func GetSessionHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := store.GetSessionByID(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "session")
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

// POST /sessions
func CreateSessionHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			datastore.SessionInput
			Title           string    `json:"title" validate:"notblank"`
			ScheduledAt     time.Time `json:"scheduledAt" validate:"required"`
			Duration        int       `json:"duration" validate:"gt=0"`
			MaxParticipants int       `json:"maxParticipants" validate:"gte=0"`
		}
		if !decode(w, r, &req) {
			return
		}
		in := req.SessionInput
		in.Title, in.ScheduledAt, in.Duration, in.MaxParticipants = req.Title, req.ScheduledAt, req.Duration, req.MaxParticipants

		ctx := r.Context()
		if in.InstructorID == "" {
			in.InstructorID = rbac.SubjectFromContext(ctx)
		}
		if in.InstructorName == "" {
			if u, ok := store.GetUserByID(ctx, in.InstructorID); ok {
				in.InstructorName = u.Name
			}
		}
		respondJSON(w, http.StatusCreated, store.CreateSession(ctx, in))
	}
}

// POST /sessions/{id}/join
func JoinSessionHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		if err := store.JoinSession(ctx, id, rbac.SubjectFromContext(ctx)); err != nil {
			respondError(w, err)
			return
		}
		s, _ := store.GetSessionByID(ctx, id)
		respondJSON(w, http.StatusOK, s)
	}
}

// GET /sessions/{id}/messages
func ListMessagesHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := store.GetSessionByID(r.Context(), id); !ok {
			notFound(w, "session")
			return
		}
		respondJSON(w, http.StatusOK, store.GetMessages(r.Context(), id))
	}
}

// POST /sessions/{id}/messages {"content": "..."}
func PostMessageHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content" validate:"notblank,max=2000"`
		}
		if !decode(w, r, &req) {
			return
		}
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		if _, ok := store.GetSessionByID(ctx, id); !ok {
			notFound(w, "session")
			return
		}
		in := datastore.MessageInput{SessionID: id, UserID: rbac.SubjectFromContext(ctx), Content: req.Content}
		if u, ok := store.GetUserByID(ctx, in.UserID); ok {
			in.UserName = u.Name
		}
		respondJSON(w, http.StatusCreated, store.CreateMessage(ctx, in))
	}
}
