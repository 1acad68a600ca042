package services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/tdp-hub/tdp-report-services/api/middleware"
	"github.com/tdp-hub/tdp-report-services/api/serializers"
	"github.com/tdp-hub/tdp-report-services/internal/authz"
	"github.com/tdp-hub/tdp-report-services/internal/events"
	"github.com/tdp-hub/tdp-report-services/models"
)

// GetYearListService lists the years that have report files for an STT.
// OFA Admins name the STT in the path; everyone else gets their own STT and
// any path STT is ignored.
func (svc *Service) GetYearListService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())
	user := middleware.UserFromContext(r.Context())

	var sttID *int
	if authz.IsInGroup(user, models.GroupOFAAdmin) {
		var err error
		sttID, err = pathInt(r, middleware.STTVar)
		if err != nil {
			logger.Warn().Err(err).Msg("Invalid stt parameter")
			HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid stt parameter"))
			return
		}
	} else {
		sttID = user.STT
	}

	// A null STT matches no report files.
	if sttID == nil {
		logger.Info().Msg("No stt to list report years for")
		WriteResponse(w, http.StatusOK, []int{})
		return
	}

	years, err := svc.Reports.GetReportYears(r.Context(), *sttID)
	if err != nil {
		logger.Error().Err(err).Int("stt", *sttID).Msg("Failed to retrieve report years from database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if years == nil {
		years = []int{}
	}

	logger.Info().Int("stt", *sttID).Int("year_count", len(years)).Msg("Successfully retrieved report years")
	WriteResponse(w, http.StatusOK, years)
}

// CreateReportFileService validates a report file payload and stores it as
// the next version of its report.
func (svc *Service) CreateReportFileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())
	user := middleware.UserFromContext(r.Context())

	serializer, errs := serializers.NewReportFileSerializer(r.Body, user)
	if errs != nil {
		logger.Warn().Interface("errors", errs).Msg("Invalid request payload")
		HandleValidationErrors(w, errs)
		return
	}
	if errs := serializer.Validate(); errs != nil {
		logger.Warn().Interface("errors", errs).Msg("Report file failed validation")
		HandleValidationErrors(w, errs)
		return
	}

	created, err := svc.Reports.CreateReportFile(r.Context(), serializer.ReportFile())
	if err != nil {
		if isUniqueViolation(err) {
			logger.Warn().Err(err).Msg("Concurrent upload of the same report version")
			HandleErrResponse(w, http.StatusConflict, err)
			return
		}
		logger.Error().Err(err).Msg("Failed to create report file in database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	logger = logEntry(logger, created)
	logger.Info().Msg("Report file created successfully")

	response := models.ReportFileResponse{ReportFile: *created}
	if uploadURL, err := svc.Files.PresignUpload(r.Context(), created.Slug); err != nil {
		logger.Error().Err(err).Msg("Failed to presign report upload")
	} else {
		response.UploadURL = uploadURL
	}

	if err := svc.Notifier.Notify(r.Context(), events.NewReportFileEvent(created)); err != nil {
		logger.Error().Err(err).Msg("Failed to publish report file event")
	}

	WriteResponse(w, http.StatusCreated, response, svc.resourceURL(r, created.ID.String()))
}

// DownloadReportFileService returns a download URL for the latest version of
// a report.
func (svc *Service) DownloadReportFileService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())
	vars := mux.Vars(r)

	sttID, err := pathInt(r, middleware.STTVar)
	if err != nil || sttID == nil {
		HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid stt parameter"))
		return
	}
	year, err := pathInt(r, "year")
	if err != nil || year == nil {
		HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid year parameter"))
		return
	}
	quarter, section := vars["quarter"], vars["section"]

	rf, err := svc.Reports.GetLatestReportFile(r.Context(), *sttID, *year, quarter, section)
	if err != nil {
		logger.Error().Err(err).Msg("Database error retrieving report file")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if rf == nil {
		logger.Warn().Int("stt", *sttID).Int("year", *year).Str("quarter", quarter).Str("section", section).Msg("Report file not found")
		HandleErrResponse(w, http.StatusNotFound, errors.New("report file not found"))
		return
	}

	logger = logEntry(logger, rf)

	url, err := svc.Files.PresignDownload(r.Context(), rf.Slug)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to presign report download")
		HandleErrResponse(w, http.StatusInternalServerError, errors.New("failed to prepare download"))
		return
	}

	logger.Info().Msg("Report file download prepared")
	WriteResponse(w, http.StatusOK, models.DownloadResponse{URL: url})
}

func logEntry(logger *zerolog.Logger, rf *models.ReportFile) *zerolog.Logger {
	l := logger.With().
		Str("report_file", rf.ID.String()).
		Int("stt", rf.STT).
		Int("year", rf.Year).
		Int("version", rf.Version).
		Logger()
	return &l
}
