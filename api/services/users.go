package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tdp-hub/tdp-report-services/api/middleware"
	"github.com/tdp-hub/tdp-report-services/api/serializers"
	"github.com/tdp-hub/tdp-report-services/internal/authz"
	"github.com/tdp-hub/tdp-report-services/models"
)

// GetCurrentUserService returns the caller's profile.
func (svc *Service) GetCurrentUserService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())
	user := middleware.UserFromContext(r.Context())

	if !user.IsAuthenticated() {
		logger.Warn().Msg("Unauthorized request: unknown user")
		HandleForbidden(w)
		return
	}

	profile, err := svc.userProfile(r.Context(), user)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build user profile")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	WriteResponse(w, http.StatusOK, profile)
}

// SetProfileService lets users set their own name and STT.
func (svc *Service) SetProfileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())
	user := middleware.UserFromContext(r.Context())

	// The profile being set is always the caller's own, so this only rejects
	// callers that are not authenticated.
	if !authz.IsUser.HasObjectPermission(authz.Request{User: user}, user) {
		logger.Warn().Msg("Access denied: profile does not belong to caller")
		HandleForbidden(w)
		return
	}

	serializer, errs := serializers.NewUserProfileSerializer(r.Body)
	if errs != nil {
		HandleValidationErrors(w, errs)
		return
	}
	if errs := serializer.Validate(); errs != nil {
		logger.Warn().Interface("errors", errs).Msg("Profile failed validation")
		HandleValidationErrors(w, errs)
		return
	}

	input := serializer.Input
	stt, err := svc.Users.GetSTT(r.Context(), input.STT.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Database error retrieving stt")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if stt == nil {
		HandleValidationErrors(w, serializers.Errors{
			"stt": fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", input.STT.ID),
		})
		return
	}

	if err := svc.Users.UpdateUserProfile(r.Context(), user.ID, input.FirstName, input.LastName, stt.ID); err != nil {
		logger.Error().Err(err).Msg("Database error updating user profile")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	updated := *user
	updated.FirstName, updated.LastName = input.FirstName, input.LastName
	updated.STT = &stt.ID

	profile, err := svc.userProfile(r.Context(), &updated)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build user profile")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info().Int("stt", stt.ID).Msg("User profile updated successfully")
	WriteResponse(w, http.StatusOK, profile)
}

// GetUsersService lists all users.
func (svc *Service) GetUsersService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	users, err := svc.Users.GetUsers(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve users from database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	logger.Info().Int("user_count", len(users)).Msg("Successfully retrieved users")
	WriteResponse(w, http.StatusOK, users)
}

// GetRolesService lists all groups.
func (svc *Service) GetRolesService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	roles, err := svc.Users.GetRoles(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve roles from database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	WriteResponse(w, http.StatusOK, roles)
}

func (svc *Service) userProfile(ctx context.Context, user *models.User) (*models.UserProfile, error) {
	roles, err := svc.Users.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user roles: %w", err)
	}
	if roles == nil {
		roles = []models.Role{}
	}

	profile := &models.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Username,
		Roles:     roles,
	}

	if user.STT != nil {
		if profile.STT, err = svc.Users.GetSTT(ctx, *user.STT); err != nil {
			return nil, fmt.Errorf("error retrieving user stt: %w", err)
		}
	}
	return profile, nil
}
