package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/mind-engage/howacademia/internal/auth/middleware"
	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

type Deps struct {
	Store  *datastore.Store
	Auth   *authmw.AuthService
	RBAC   *rbac.Middleware
	Logger *slog.Logger

	CORSOrigins    []string
	AuthRatePerSec float64
	AuthRateBurst  int

	// Ready reports whether backing services are reachable; nil means always.
	Ready func(ctx context.Context) error
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) http.Handler {
	if d.RBAC == nil {
		d.RBAC = rbac.NewMiddleware(nil)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	store, authz, checker := d.Store, d.RBAC, d.RBAC.Checker()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(ar chi.Router) {
		ar.Use(RateLimit(d.AuthRatePerSec, d.AuthRateBurst))
		ar.Post("/signin", SignInHandler(store, d.Auth))
		ar.Post("/signup", SignUpHandler(store, d.Auth))
		ar.With(authmw.JWTMiddleware(d.Auth)).Post("/signout", SignOutHandler(store))
	})

	r.Get("/institutions", ListInstitutionsHandler(store))
	r.Get("/institutions/{id}", GetInstitutionHandler(store))

	// Protected API (JWT → stored role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))
		pr.Use(authmw.AttachRole(func(ctx context.Context, id string) (string, bool) {
			u, ok := store.GetUserByID(ctx, id)
			return string(u.Role), ok
		}, false))

		pr.Get("/me", MeHandler(store))

		pr.With(authz.Require(rbac.PermUsersList)).Get("/users", ListUsersHandler(store))
		pr.With(authz.Require(rbac.PermUsersList)).Get("/users/{id}", GetUserHandler(store))
		pr.With(authz.Require(rbac.PermUserUpdate), authz.RequireOwnerOr(rbac.PermUsersUpdateAny, func(r *http.Request) bool {
			return chi.URLParam(r, "id") == rbac.SubjectFromContext(r.Context())
		})).Patch("/users/{id}", UpdateUserHandler(store))

		pr.With(authz.Require(rbac.PermCourseView)).Get("/courses", ListCoursesHandler(store))
		pr.With(authz.Require(rbac.PermCourseView)).Get("/courses/{id}", GetCourseHandler(store))
		pr.With(authz.Require(rbac.PermCourseCreate)).Post("/courses", CreateCourseHandler(store))
		pr.With(authz.Require(rbac.PermCourseEnroll)).Post("/courses/{id}/enroll", EnrollHandler(store, checker))

		pr.With(authz.Require(rbac.PermExamView)).Get("/exams", ListExamsHandler(store, checker))
		pr.With(authz.Require(rbac.PermExamView)).Get("/exams/{id}", GetExamHandler(store, checker))
		pr.With(authz.Require(rbac.PermExamCreate)).Post("/exams", CreateExamHandler(store))
		pr.With(authz.Require(rbac.PermExamTake)).Post("/exams/{id}/submit", SubmitExamHandler(store))

		pr.With(authz.RequireAny(rbac.PermSubmissionOwn, rbac.PermSubmissionAll)).
			Get("/submissions", ListSubmissionsHandler(store, checker))
		pr.With(authz.Require(rbac.PermSubmissionCreate)).Post("/submissions", CreateSubmissionHandler(store, checker))

		pr.With(authz.Require(rbac.PermSessionView)).Get("/sessions", ListSessionsHandler(store))
		pr.With(authz.Require(rbac.PermSessionView)).Get("/sessions/{id}", GetSessionHandler(store))
		pr.With(authz.Require(rbac.PermSessionCreate)).Post("/sessions", CreateSessionHandler(store))
		pr.With(authz.Require(rbac.PermSessionJoin)).Post("/sessions/{id}/join", JoinSessionHandler(store))
		pr.With(authz.Require(rbac.PermSessionChat)).Get("/sessions/{id}/messages", ListMessagesHandler(store))
		pr.With(authz.Require(rbac.PermSessionChat)).Post("/sessions/{id}/messages", PostMessageHandler(store))

		pr.With(authz.Require(rbac.PermInsightsView)).Get("/insights/students/{id}", StudentInsightsHandler(store))
		pr.With(authz.Require(rbac.PermInsightsView)).Get("/insights/students/{id}/suggestions", SuggestionsHandler(store))
		pr.With(authz.Require(rbac.PermInsightsView)).Get("/insights/exams/{id}", ExamInsightsHandler(store))
	})

	return r
}
