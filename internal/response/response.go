// Package response builds the JSON envelope every API endpoint returns and
// parses the listing parameters every paginated endpoint accepts.
package response

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/contextutils"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// ===============================
// CONFIGURATION
// ===============================

// Config controls envelope rendering.
type Config struct {
	PrettyJSON         bool `json:"pretty_json"`
	IncludeRequestID   bool `json:"include_request_id"`
	MaskInternalErrors bool `json:"mask_internal_errors"`
}

// DefaultConfig returns production-safe rendering defaults.
func DefaultConfig() *Config {
	return &Config{
		PrettyJSON:         false,
		IncludeRequestID:   true,
		MaskInternalErrors: true,
	}
}

// ===============================
// ENVELOPE
// ===============================

// APIResponse is the uniform envelope: success mirrors statusCode < 400.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the machine-usable error kind alongside the message.
type ErrorBody struct {
	Type string `json:"type"`
	Code string `json:"code,omitempty"`
}

// ===============================
// BUILDER
// ===============================

// Builder writes API envelopes.
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a response builder.
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{config: config, logger: logger}
}

// WriteSuccess writes a 200 envelope.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.write(w, r, &APIResponse{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteCreated writes a 201 envelope.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.write(w, r, &APIResponse{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError maps a service error onto the envelope. Internal and upstream
// failures are masked in production mode.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := services.GetServiceError(err)

	message := serviceErr.Message
	if b.config.MaskInternalErrors && serviceErr.GetStatusCode() >= http.StatusInternalServerError {
		message = "Internal server error"
	}

	if serviceErr.GetStatusCode() >= http.StatusInternalServerError {
		b.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.Error(serviceErr),
		)
	}

	b.write(w, r, &APIResponse{
		StatusCode: serviceErr.GetStatusCode(),
		Message:    message,
		Success:    false,
		Error: &ErrorBody{
			Type: serviceErr.Type,
			Code: serviceErr.Code,
		},
	})
}

func (b *Builder) write(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if b.config.IncludeRequestID {
		if requestID := contextutils.GetRequestID(r.Context()); requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}
	}
	w.WriteHeader(resp.StatusCode)

	enc := json.NewEncoder(w)
	if b.config.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		b.logger.Error("failed to encode response", zap.Error(err))
	}
}
