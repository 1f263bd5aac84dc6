package http

import (
	"net/http"

	authmw "github.com/mind-engage/howacademia/internal/auth/middleware"
	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

type tokenResponse struct {
	AccessToken string         `json:"access_token"`
	User        datastore.User `json:"user"`
}

func issue(w http.ResponseWriter, a *authmw.AuthService, u datastore.User, status int) {
	tok, err := a.IssueJWT(u.ID, string(u.Role))
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "issue token"})
		return
	}
	respondJSON(w, status, tokenResponse{AccessToken: tok, User: u})
}

// POST /auth/signin {"email": "...", "password": "..."}
// Unknown emails get a new student account; the password is not checked.
func SignInHandler(store *datastore.Store, a *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password"`
		}
		if !decode(w, r, &req) {
			return
		}
		u, err := store.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, err)
			return
		}
		issue(w, a, u, http.StatusOK)
	}
}

// POST /auth/signup {"email", "password", "role", "name"}
func SignUpHandler(store *datastore.Store, a *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string         `json:"email" validate:"required,email"`
			Password string         `json:"password" validate:"required,min=6"`
			Role     datastore.Role `json:"role" validate:"required,oneof=student instructor institution"`
			Name     string         `json:"name"`
		}
		if !decode(w, r, &req) {
			return
		}
		u, err := store.SignUp(r.Context(), req.Email, req.Password, req.Role, req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		issue(w, a, u, http.StatusCreated)
	}
}

// POST /auth/signout
func SignOutHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.SignOut(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /me
func MeHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := store.GetUserByID(r.Context(), rbac.SubjectFromContext(r.Context()))
		if !ok {
			notFound(w, "user")
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}
