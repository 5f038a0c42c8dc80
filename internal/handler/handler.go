package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/multicloud-ai/inference-gateway/internal/inference"
	"github.com/multicloud-ai/inference-gateway/internal/provider"
	"github.com/multicloud-ai/inference-gateway/internal/router"
)

const maxBodyBytes = 1 << 20

// Limits carries the request defaults and bounds from configuration.
type Limits struct {
	DefaultMaxTokens   int
	MaxTokens          int
	DefaultTemperature float64
}

// InferenceHandler serves the gateway's caller-facing endpoints.
type InferenceHandler struct {
	logger        *slog.Logger
	router        *router.Router
	registry      *provider.Registry
	limits        Limits
	providerNames []interface{}
}

// inferenceRequest is the wire form of an inference call. Pointers keep
// "field omitted" distinguishable from a legitimate zero value.
type inferenceRequest struct {
	Prompt        string   `json:"prompt"`
	MaxTokens     *int     `json:"max_tokens"`
	Temperature   *float64 `json:"temperature"`
	CloudProvider string   `json:"cloud_provider"`
}

func NewInferenceHandler(logger *slog.Logger, rt *router.Router, registry *provider.Registry, limits Limits) *InferenceHandler {
	names := make([]interface{}, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		names = append(names, name)
	}

	return &InferenceHandler{
		logger:        logger,
		router:        rt,
		registry:      registry,
		limits:        limits,
		providerNames: names,
	}
}

// Inference handles POST /inference.
func (h *InferenceHandler) Inference(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in inferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := inference.Request{
		Prompt:        in.Prompt,
		MaxTokens:     h.limits.DefaultMaxTokens,
		Temperature:   h.limits.DefaultTemperature,
		CloudProvider: in.CloudProvider,
	}
	if in.MaxTokens != nil {
		req.MaxTokens = *in.MaxTokens
	}
	if in.Temperature != nil {
		req.Temperature = *in.Temperature
	}

	if err := h.validate(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.logger.Info("Received inference request",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("from", r.RemoteAddr),
		slog.String("override", req.CloudProvider))

	resp, err := h.router.Route(r.Context(), req)
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /status and returns the availability map.
func (h *InferenceHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Snapshot())
}

// Health handles GET /health, the gateway's own liveness endpoint.
func (h *InferenceHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *InferenceHandler) validate(req *inference.Request) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Prompt, validation.Required),
		validation.Field(&req.MaxTokens,
			validation.Required,
			validation.Min(1),
			validation.Max(h.limits.MaxTokens),
		),
		validation.Field(&req.Temperature,
			validation.Min(0.0),
			validation.Max(2.0),
		),
		validation.Field(&req.CloudProvider, validation.In(h.providerNames...)),
	)
}

func (h *InferenceHandler) writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("Inference request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("err", err))

	var (
		unavailableErr *inference.UnavailableError
		backendErr     *inference.BackendError
	)

	switch {
	case errors.Is(err, inference.ErrNoProviderAvailable):
		writeError(w, http.StatusServiceUnavailable, "no available model services")
	case errors.As(err, &unavailableErr):
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("service %s unavailable", unavailableErr.Provider))
	case errors.As(err, &backendErr):
		writeError(w, backendErr.StatusCode, backendErr.Detail)
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
