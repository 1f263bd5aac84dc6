package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/insights"
)

type reportResponse struct {
	Report string `json:"report"`
}

// GET /insights/students/{id}
func StudentInsightsHandler(src insights.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := insights.StudentReport(r.Context(), src, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, reportResponse{Report: out})
	}
}

// GET /insights/students/{id}/suggestions?goals=
func SuggestionsHandler(src insights.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := insights.SuggestionsReport(r.Context(), src, chi.URLParam(r, "id"), r.URL.Query().Get("goals"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, reportResponse{Report: out})
	}
}

// GET /insights/exams/{id}
func ExamInsightsHandler(src insights.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := insights.ExamReport(r.Context(), src, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, reportResponse{Report: out})
	}
}
