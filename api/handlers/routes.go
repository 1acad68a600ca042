package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tdp-hub/tdp-report-services/api/middleware"
	"github.com/tdp-hub/tdp-report-services/api/services"
	"github.com/tdp-hub/tdp-report-services/internal/authz"
)

// RegisterRoutes mounts the API on api. Every route authenticates the caller;
// report and listing routes are additionally guarded by authorizer, which
// defaults to authz.DefaultAuthorizer when nil.
func RegisterRoutes(api *mux.Router, svc *services.Service, users middleware.UserLoader, authorizer authz.Authorizer) {

	if authorizer == nil {
		authorizer = authz.DefaultAuthorizer
	}

	api.Use(middleware.WithLogger)
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.WithUser(users))

	guard := func(allowed func(authz.Request) bool, h http.HandlerFunc) http.Handler {
		return middleware.Require(allowed)(h)
	}

	// Report routes
	api.Handle("/reports/years", guard(authorizer.CanListReportYears, GetYearList(svc))).Methods(http.MethodGet)
	api.Handle("/reports/years/{stt:[1-9][0-9]*}", guard(authorizer.CanListReportYears, GetYearList(svc))).Methods(http.MethodGet)
	api.Handle("/reports/", guard(authorizer.CanCreateReportFile, CreateReportFile(svc))).Methods(http.MethodPost)
	api.Handle("/reports/download/{stt:[1-9][0-9]*}/{year:[0-9]+}/{quarter:Q[1-4]}/{section}",
		guard(authorizer.CanDownloadReportFile, DownloadReportFile(svc))).Methods(http.MethodGet)

	// User routes
	api.HandleFunc("/users/me", GetCurrentUser(svc)).Methods(http.MethodGet)
	api.HandleFunc("/users/set_profile", SetProfile(svc)).Methods(http.MethodPatch)
	api.Handle("/users", guard(authorizer.CanListUsers, GetUsers(svc))).Methods(http.MethodGet)
	api.Handle("/roles", guard(authorizer.CanListRoles, GetRoles(svc))).Methods(http.MethodGet)
}
