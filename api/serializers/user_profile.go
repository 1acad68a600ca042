package serializers

import (
	"io"
	"strings"
)

// STTRef references an STT by id.
type STTRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

// UserProfileInput is the payload accepted when a user sets their profile.
type UserProfileInput struct {
	FirstName string  `json:"first_name" validate:"required,max=150"`
	LastName  string  `json:"last_name" validate:"required,max=150"`
	STT       *STTRef `json:"stt" validate:"required"`
}

type UserProfileSerializer struct {
	Input UserProfileInput
}

func NewUserProfileSerializer(body io.Reader) (*UserProfileSerializer, Errors) {
	s := &UserProfileSerializer{}
	if errs := decode(body, &s.Input); errs != nil {
		return nil, errs
	}
	s.Input.FirstName = strings.TrimSpace(s.Input.FirstName)
	s.Input.LastName = strings.TrimSpace(s.Input.LastName)
	return s, nil
}

// Validate returns the field errors of the payload, or nil. Whether the STT
// exists is checked by the caller against the store.
func (s *UserProfileSerializer) Validate() Errors {
	errs := validationErrors(s.Input)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
