package models

// Response is the error envelope returned by the API.
type Response struct {
	Success      int               `json:"success"`
	ErrorCode    string            `json:"error_code,omitempty"`
	ErrorDetails string            `json:"error_details,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}
