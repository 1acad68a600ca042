package handlers

import (
	"net/http"

	"github.com/tdp-hub/tdp-report-services/api/services"
)

func GetCurrentUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.GetCurrentUserService(w, r)
	}
}

func SetProfile(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.SetProfileService(w, r)
	}
}

func GetUsers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.GetUsersService(w, r)
	}
}

func GetRoles(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.GetRolesService(w, r)
	}
}
