package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/datastore"
)

// GET /institutions
func ListInstitutionsHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, store.GetInstitutions(r.Context()))
	}
}

// GET /institutions/{id}
func GetInstitutionHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, ok := store.GetInstitutionByID(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "institution")
			return
		}
		respondJSON(w, http.StatusOK, inst)
	}
}
