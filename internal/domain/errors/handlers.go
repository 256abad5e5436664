// Package errors holds the domain error catalogue rendered by the HTTP layer.
package errors

// ErrorInfo carries the business error code and optional details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Info extracts the client-facing part of an AppError.
func Info(err AppError) *ErrorInfo {
	return &ErrorInfo{Code: err.ErrorCode(), Details: err.Details()}
}
