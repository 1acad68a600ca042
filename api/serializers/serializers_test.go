package serializers

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdp-hub/tdp-report-services/models"
)

func prepper(stt int) *models.User {
	return &models.User{ID: uuid.New(), STT: &stt, Groups: []models.Group{models.GroupDataPrepper}}
}

func TestReportFileSerializer(t *testing.T) {
	user := prepper(3)
	body := `{"original_filename": "active.TXT", "section": "Active Case Data", "quarter": "Q1", "year": 2021, "stt": 3, "extension": ".TXT"}`

	s, errs := NewReportFileSerializer(strings.NewReader(body), user)
	require.Nil(t, errs)
	require.Nil(t, s.Validate())

	rf := s.ReportFile()
	assert.Equal(t, 3, rf.STT)
	assert.Equal(t, user.ID, rf.User)
	assert.Equal(t, "txt", rf.Extension)
	assert.Equal(t, "data_files/3/2021/Q1/active_case_data/"+rf.ID.String()+".txt", rf.Slug)
}

func TestReportFileSerializer_DefaultsToOwnSTT(t *testing.T) {
	body := `{"original_filename": "closed.txt", "section": "Closed Case Data", "quarter": "Q4", "year": 2020}`

	s, errs := NewReportFileSerializer(strings.NewReader(body), prepper(7))
	require.Nil(t, errs)
	require.Nil(t, s.Validate())

	rf := s.ReportFile()
	assert.Equal(t, 7, rf.STT)
	assert.Equal(t, DefaultExtension, rf.Extension)
}

func TestReportFileSerializer_STTRequiredWithoutOwnSTT(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Groups: []models.Group{models.GroupOFAAdmin}}
	body := `{"original_filename": "agg.txt", "section": "Aggregate Data", "quarter": "Q2", "year": 2020}`

	s, errs := NewReportFileSerializer(strings.NewReader(body), admin)
	require.Nil(t, errs)

	verrs := s.Validate()
	assert.Equal(t, "This field is required.", verrs["stt"])
}

func TestReportFileSerializer_InvalidFields(t *testing.T) {
	body := `{"original_filename": "", "section": "Everything", "quarter": "Q5", "year": 1999, "stt": 3}`

	s, errs := NewReportFileSerializer(strings.NewReader(body), prepper(3))
	require.Nil(t, errs)

	verrs := s.Validate()
	assert.Contains(t, verrs, "original_filename")
	assert.Contains(t, verrs, "section")
	assert.Contains(t, verrs, "quarter")
	assert.Contains(t, verrs, "year")
	assert.NotContains(t, verrs, "stt")
}

func TestReportFileSerializer_BadJSON(t *testing.T) {
	_, errs := NewReportFileSerializer(strings.NewReader(`{"year": "soon"`), prepper(3))
	assert.Contains(t, errs, NonFieldErrors)

	_, errs = NewReportFileSerializer(strings.NewReader(``), prepper(3))
	assert.Equal(t, "No data provided.", errs[NonFieldErrors])
}

func TestReportFileSerializer_TrailingData(t *testing.T) {
	body := `{"original_filename": "a.txt", "section": "Active Case Data", "quarter": "Q1", "year": 2021, "stt": 4} x`
	_, errs := NewReportFileSerializer(strings.NewReader(body), prepper(3))
	assert.Contains(t, errs[NonFieldErrors], ErrTrailingData.Error())

	_, errs = NewReportFileSerializer(strings.NewReader(`{"stt": 3} {"stt": 4}`), prepper(3))
	assert.Contains(t, errs, NonFieldErrors)
}

func TestDecodeJSON(t *testing.T) {
	var payload struct {
		STT *int `json:"stt"`
	}

	require.NoError(t, DecodeJSON(strings.NewReader("{\"stt\": 3}\n  "), &payload))
	assert.Equal(t, 3, *payload.STT)

	assert.ErrorIs(t, DecodeJSON(strings.NewReader(`{"stt": 3}]`), &payload), ErrTrailingData)
	assert.ErrorIs(t, DecodeJSON(strings.NewReader(""), &payload), io.EOF)
	assert.Error(t, DecodeJSON(strings.NewReader(`{"stt": "3"}`), &payload))
}

func TestUserProfileSerializer(t *testing.T) {
	s, errs := NewUserProfileSerializer(strings.NewReader(`{"first_name": " Pat ", "last_name": "Prepper", "stt": {"id": 3}}`))
	require.Nil(t, errs)
	require.Nil(t, s.Validate())
	assert.Equal(t, "Pat", s.Input.FirstName)
	assert.Equal(t, 3, s.Input.STT.ID)
}

func TestUserProfileSerializer_Blank(t *testing.T) {
	s, errs := NewUserProfileSerializer(strings.NewReader(`{"first_name": "   ", "last_name": "", "stt": {}}`))
	require.Nil(t, errs)

	verrs := s.Validate()
	assert.Contains(t, verrs, "first_name")
	assert.Contains(t, verrs, "last_name")
	assert.Contains(t, verrs, "stt.id")
}

func TestUserProfileSerializer_MissingSTT(t *testing.T) {
	s, errs := NewUserProfileSerializer(strings.NewReader(`{"first_name": "Pat", "last_name": "Prepper"}`))
	require.Nil(t, errs)

	assert.Contains(t, s.Validate(), "stt")
}
