package serializers

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/tdp-hub/tdp-report-services/models"
)

const DefaultExtension = "txt"

// ReportFileInput is the payload accepted when creating a report file.
type ReportFileInput struct {
	OriginalFilename string `json:"original_filename" validate:"required,max=256"`
	Extension        string `json:"extension" validate:"omitempty,alphanum,max=8"`
	Section          string `json:"section" validate:"required,oneof='Active Case Data' 'Closed Case Data' 'Aggregate Data' 'Stratum Data'"`
	Quarter          string `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	Year             int    `json:"year" validate:"required,gte=2000,lte=2100"`
	STT              *int   `json:"stt" validate:"required,gt=0"`
}

// ReportFileSerializer turns a create request into a report file record.
type ReportFileSerializer struct {
	Input ReportFileInput
	User  *models.User
}

// NewReportFileSerializer decodes body on behalf of user. A payload without
// an STT targets the user's own STT.
func NewReportFileSerializer(body io.Reader, user *models.User) (*ReportFileSerializer, Errors) {
	s := &ReportFileSerializer{User: user}
	if errs := decode(body, &s.Input); errs != nil {
		return nil, errs
	}

	if s.Input.STT == nil && user != nil && user.STT != nil {
		stt := *user.STT
		s.Input.STT = &stt
	}
	s.Input.Extension = strings.ToLower(strings.TrimPrefix(s.Input.Extension, "."))
	if s.Input.Extension == "" {
		s.Input.Extension = DefaultExtension
	}
	return s, nil
}

// Validate returns the field errors of the payload, or nil.
func (s *ReportFileSerializer) Validate() Errors {
	errs := validationErrors(s.Input)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ReportFile builds the record to store. Validate must have passed.
func (s *ReportFileSerializer) ReportFile() *models.ReportFile {
	id := uuid.New()
	rf := &models.ReportFile{
		ID:               id,
		OriginalFilename: s.Input.OriginalFilename,
		Extension:        s.Input.Extension,
		Section:          s.Input.Section,
		Quarter:          s.Input.Quarter,
		Year:             s.Input.Year,
		STT:              *s.Input.STT,
	}
	if s.User != nil {
		rf.User = s.User.ID
	}
	rf.Slug = Slug(rf)
	return rf
}

// Slug is the object-store key of a report file.
func Slug(rf *models.ReportFile) string {
	section := strings.ReplaceAll(strings.ToLower(rf.Section), " ", "_")
	return fmt.Sprintf("data_files/%d/%d/%s/%s/%s.%s", rf.STT, rf.Year, rf.Quarter, section, rf.ID, rf.Extension)
}
