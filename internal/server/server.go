package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/calculator"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/leads"
	"github.com/iwvelando/roi-calculator/internal/presentation"
	"github.com/iwvelando/roi-calculator/internal/roi"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	conf        *config.Configuration
	leads       *leads.Store
	maxBodySize int64
	version     string
}

// applyOrder puts the custom price ahead of the selector so that a request
// carrying both behaves like typing the price, then selecting custom.
var applyOrder = []calculator.Field{
	calculator.FieldStructureType,
	calculator.FieldClientCount,
	calculator.FieldMonthlyPrice,
	calculator.FieldPotentialIncrease,
	calculator.FieldCustomPrice,
	calculator.FieldDevicePrice,
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, conf *config.Configuration, store *leads.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	if store == nil {
		store = leads.NewStore(logger, nil)
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, conf: conf, leads: store, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Get("/api/config", h.handleConfig)
	r.Post("/api/estimate", h.handleEstimate)
	r.Post("/api/leads", h.handleLeadSubmit)
	r.Get("/api/leads/{id}", h.handleLeadGet)
	r.Get("/api/version", h.handleVersion)

	return r
}

type configResponse struct {
	Catalog      []config.DeviceOption `json:"catalog"`
	CustomOption string                `json:"customOption"`
	Defaults     config.Defaults       `json:"defaults"`
	Multipliers  config.Multipliers    `json:"multipliers"`
	Thresholds   config.Thresholds     `json:"thresholds"`
	Animation    animationResponse     `json:"animation"`
}

type animationResponse struct {
	CountUpDurationMs int64 `json:"countUpDurationMs"`
	UpdateDelayMs     int64 `json:"updateDelayMs"`
}

type estimateResponse struct {
	Input    calculator.Input  `json:"input"`
	Result   roi.Result        `json:"result"`
	Band     assessment.Band   `json:"band"`
	View     presentation.View `json:"view"`
	Duration string            `json:"duration"`
}

type leadResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, configResponse{
		Catalog:      h.conf.Catalog,
		CustomOption: constants.CustomPriceOption,
		Defaults:     h.conf.Defaults,
		Multipliers:  h.conf.Multipliers,
		Thresholds:   h.conf.Thresholds,
		Animation: animationResponse{
			CountUpDurationMs: h.conf.Animation.CountUpDuration.Milliseconds(),
			UpdateDelayMs:     h.conf.Animation.UpdateDelay.Milliseconds(),
		},
	})
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEstimate"
	start := time.Now()

	var payload map[string]interface{}
	if status, err := h.decodeBody(w, r, &payload); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	fields := make(map[calculator.Field]string, len(payload))
	for name, value := range payload {
		field, err := calculator.ParseField(name)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		fields[field] = coerceString(value)
	}

	input := calculator.NewInput(h.conf.Defaults)
	for _, field := range applyOrder {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		if err := input.Apply(field, raw); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	result := roi.Compute(input.ROIInput(), h.conf.Multipliers)
	band := assessment.Assess(result, h.conf.Thresholds)
	view := presentation.BuildView(result, band, format.Currency, h.conf.Multipliers.FinancingMonths)
	elapsed := time.Since(start)

	h.logger.Info("estimate computed",
		zap.String("op", op),
		zap.Bool("sufficient", result.Sufficient),
		zap.Stringer("band", band),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, estimateResponse{
		Input:    input,
		Result:   result,
		Band:     band,
		View:     view,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleLeadSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLeadSubmit"

	var submission leads.Submission
	if status, err := h.decodeBody(w, r, &submission); err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	lead, err := h.leads.Submit(submission)
	if err != nil {
		if errors.Is(err, leads.ErrValidation) {
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusCreated, leadResponse{
		ID:        lead.ID,
		Timestamp: lead.Timestamp.Format(time.RFC3339),
	})
}

func (h *handler) handleLeadGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), "server.handleLeadGet")
		return
	}
	h.writeJSON(w, http.StatusOK, lead)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody reads a size-limited JSON body into dst and returns the status
// to answer with when it fails.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxBodySize)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to decode request: %v", err)
	}
	return http.StatusOK, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// coerceString turns a decoded JSON value into the text an input field
// would hold.
func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
