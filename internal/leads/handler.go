package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/lead-capture/internal/observability/metrics"
	"github.com/wolfman30/lead-capture/pkg/logging"
)

var leadsTracer = otel.Tracer("leadcapture/leads")

const defaultMaxBodyBytes int64 = 64 << 10

var (
	errNullBody     = errors.New("leads: request body is null")
	errTrailingData = errors.New("leads: unexpected data after request body")
)

// SubmitLeadResponse is returned on a successful insert.
type SubmitLeadResponse struct {
	Success bool  `json:"success"`
	Data    *Lead `json:"data"`
}

// ErrorResponse carries a fixed caller-facing message and, for schema
// failures, per-field messages.
type ErrorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields,omitempty"`
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo          Repository
	logger        *logging.Logger
	metrics       *metrics.LeadMetrics
	backend       string
	insertTimeout time.Duration
	maxBodyBytes  int64
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithMetrics records submission outcomes and insert latency labelled by backend.
func WithMetrics(m *metrics.LeadMetrics, backend string) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
		if backend != "" {
			h.backend = backend
		}
	}
}

// WithInsertTimeout bounds the storage call. Zero disables the bound.
func WithInsertTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d >= 0 {
			h.insertTimeout = d
		}
	}
}

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if repo == nil {
		repo = NewUnconfiguredRepository()
	}
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		repo:         repo,
		logger:       logger,
		backend:      "unknown",
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StorageConfigured reports whether the injected backend is configured.
func (h *Handler) StorageConfigured() bool {
	return h.repo.Configured()
}

// SubmitLead handles POST /api/submit-lead requests
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := leadsTracer.Start(r.Context(), "leads.submit", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	outcome := metrics.OutcomeUnexpected
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while submitting lead", "panic", fmt.Sprint(rec))
			span.SetStatus(codes.Error, "panic")
			outcome = metrics.OutcomeUnexpected
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: MsgUnexpectedFailed})
		}
		span.SetAttributes(attribute.String("lead.outcome", outcome))
		h.metrics.ObserveSubmission(outcome)
	}()

	req, err := decodeSubmission(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.Error("failed to decode lead submission", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: MsgUnexpectedFailed})
		return
	}

	if err := req.RequireFields(); err != nil {
		outcome = metrics.OutcomeInvalid
		h.logger.Debug("lead submission missing fields", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: MsgFieldsRequired})
		return
	}

	if !h.repo.Configured() {
		outcome = metrics.OutcomeUnconfigured
		h.logger.Error("lead storage is not configured", "backend", h.backend)
		span.SetStatus(codes.Error, "storage not configured")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: MsgNotConfigured})
		return
	}

	if fieldErrs := Validate(*req); len(fieldErrs) > 0 {
		outcome = metrics.OutcomeInvalid
		h.logger.Debug("lead submission failed validation", "fields", fieldErrs.Error())
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: MsgInvalidFields, Fields: fieldErrs})
		return
	}

	lead, err := h.insert(ctx, req)
	if err != nil {
		outcome = metrics.OutcomeStorageError
		h.logger.Error("failed to store lead", "error", err, "backend", h.backend)
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: MsgSubmitFailed})
		return
	}

	outcome = metrics.OutcomeCreated
	if lead != nil {
		h.logger.Info("lead created", "id", lead.ID, "backend", h.backend)
	} else {
		h.logger.Info("lead created without returned record", "backend", h.backend)
	}
	writeJSON(w, http.StatusOK, SubmitLeadResponse{Success: true, Data: lead})
}

func (h *Handler) insert(ctx context.Context, req *SubmitLeadRequest) (*Lead, error) {
	if h.insertTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.insertTimeout)
		defer cancel()
	}
	start := time.Now()
	lead, err := h.repo.Create(ctx, req)
	h.metrics.ObserveInsertLatency(h.backend, time.Since(start).Seconds())
	return lead, err
}

// decodeSubmission reads exactly one JSON object. A null body or trailing data
// after the object is malformed.
func decodeSubmission(body io.Reader) (*SubmitLeadRequest, error) {
	dec := json.NewDecoder(body)
	var req *SubmitLeadRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errNullBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, fmt.Errorf("trailing data after request body: %w", err)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
