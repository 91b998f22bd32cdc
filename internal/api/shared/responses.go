package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response statuses of the API envelope. Client errors report "fail",
// server errors report "error".
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// developmentMode controls whether error responses include the raw error
// detail. Set once at startup; never enabled in production.
var developmentMode = false

// SetDevelopmentMode toggles inclusion of raw error detail in error
// responses.
func SetDevelopmentMode(enabled bool) {
	developmentMode = enabled
}

// Envelope is the standard response body shape.
type Envelope struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`

	// Error carries diagnostic detail in development mode only.
	Error string `json:"error,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope wrapping the given data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, Envelope{Status: StatusSuccess, Data: data})
}

// RespondWithList writes a success envelope including the results count.
func RespondWithList(w http.ResponseWriter, r *http.Request, status int, data any, results int) {
	RespondWithJSON(w, r, status, Envelope{
		Status:  StatusSuccess,
		Results: &results,
		Data:    data,
	})
}

// RespondWithToken writes a success envelope carrying a bearer token next
// to the data.
func RespondWithToken(w http.ResponseWriter, r *http.Request, status int, token string, data any) {
	RespondWithJSON(w, r, status, Envelope{
		Status: StatusSuccess,
		Token:  token,
		Data:   data,
	})
}

// RespondWithMessage writes a success envelope with only a message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, Envelope{Status: StatusSuccess, Message: message})
}

// RespondWithError writes an error envelope with the given status code and
// safe, user-facing message. Client errors (4xx) report status "fail",
// server errors "error". It also logs the response with the trace ID for
// correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes an error envelope and logs the detailed
// underlying error. The raw error is never exposed to the client outside
// development mode.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	envelopeStatus := StatusFail
	if status >= http.StatusInternalServerError {
		envelopeStatus = StatusError
	}

	body := Envelope{Status: envelopeStatus, Message: userMessage}
	if developmentMode && err != nil {
		body.Error = err.Error()
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, body)
}
