package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/datastore"
)

// GET /users?role=&institution_id=
func ListUsersHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		respondJSON(w, http.StatusOK, store.GetUsers(r.Context(), datastore.UserFilter{
			Role:          datastore.Role(q.Get("role")),
			InstitutionID: q.Get("institution_id"),
		}))
	}
}

// GET /users/{id}
func GetUserHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "user")
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

type updateUserRequest struct {
	datastore.UserUpdate
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty" validate:"omitempty,notblank"`
}

// PATCH /users/{id}
func UpdateUserHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if !decode(w, r, &req) {
			return
		}
		up := req.UserUpdate
		up.Email, up.Name = req.Email, req.Name
		u, err := store.UpdateUser(r.Context(), chi.URLParam(r, "id"), up)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}
