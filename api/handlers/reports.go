package handlers

import (
	"net/http"

	"github.com/tdp-hub/tdp-report-services/api/services"
)

func GetYearList(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.GetYearListService(w, r)
	}
}

func CreateReportFile(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.CreateReportFileService(w, r)
	}
}

func DownloadReportFile(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.DownloadReportFileService(w, r)
	}
}
