package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/tdp-hub/tdp-report-services/api/middleware"
	"github.com/tdp-hub/tdp-report-services/api/serializers"
	"github.com/tdp-hub/tdp-report-services/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes err as an error envelope. Database errors carry
// their condition name in error_code.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	var pqErr *pq.Error
	var response models.Response

	if errors.As(err, &pqErr) {
		response = models.Response{
			Success:      0,
			ErrorCode:    pqErr.Code.Name(),
			ErrorDetails: pqErr.Message,
		}
	} else {
		response = models.Response{
			Success:      0,
			ErrorDetails: err.Error(),
		}
	}

	WriteResponse(w, statusCode, response)
}

// HandleValidationErrors writes field errors with a 400 status.
func HandleValidationErrors(w http.ResponseWriter, errs serializers.Errors) {
	WriteResponse(w, http.StatusBadRequest, models.Response{
		Success:      0,
		ErrorDetails: "invalid request payload",
		Errors:       errs,
	})
}

// HandleForbidden writes the standard authorization denial.
func HandleForbidden(w http.ResponseWriter) {
	HandleErrResponse(w, http.StatusForbidden, errors.New(middleware.PermissionDenied))
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}

// pathInt reads an integer route variable. It reports nil if the route has
// no such variable.
func pathInt(r *http.Request, name string) (*int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// resourceURL is the Location of a resource created under the request path.
// It is absolute when the public host is configured.
func (svc *Service) resourceURL(r *http.Request, id string) string {
	path := fmt.Sprintf("%s/%s", strings.TrimSuffix(r.URL.Path, "/"), id)
	if svc.Config == nil || svc.Config.Host == "" {
		return path
	}
	return (&url.URL{Scheme: "https", Host: svc.Config.Host, Path: path}).String()
}
