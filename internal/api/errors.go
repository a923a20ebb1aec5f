package api

import "encoding/json"

// The backend reports failures as {"detail": "..."} bodies. Each request kind
// gets its own error type so callers can branch on the failure class without
// string matching.

type UploadError struct {
	Message string
}

func (e *UploadError) Error() string { return "upload failed: " + e.Message }

type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string { return "analysis failed: " + e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return "not found: " + e.Message }

type FetchError struct {
	Message string
}

func (e *FetchError) Error() string { return "fetch failed: " + e.Message }

type AlertError struct {
	Message string
}

func (e *AlertError) Error() string { return "alert setup failed: " + e.Message }

type errorBody struct {
	Detail string `json:"detail"`
}

// backendDetail extracts the detail field from an error body, falling back to
// the given message when the body is not the expected shape.
func backendDetail(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return fallback
}
