package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"heartrisk/ml"
	"heartrisk/predictor"
)

var errNoData = errors.New("no data provided")

// Handler serves the prediction API and the static frontend.
type Handler struct {
	pipeline      *predictor.Pipeline
	indexPath     string
	modelsMissing string
	logger        *zap.Logger
}

// NewHandler wires the API handlers to a pipeline. artifacts names the files the
// pipeline was expected to load; it is only used for the degraded-mode error message.
func NewHandler(pipeline *predictor.Pipeline, artifacts ml.ArtifactConfig, indexPath string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	modelFile := filepath.Base(artifacts.ModelPath)
	if artifacts.ModelPath == "" {
		modelFile = "heart_disease_model.json"
	}
	scalerFile := filepath.Base(artifacts.ScalerPath)
	if artifacts.ScalerPath == "" {
		scalerFile = "scaler.json"
	}
	return &Handler{
		pipeline:      pipeline,
		indexPath:     indexPath,
		modelsMissing: fmt.Sprintf("Models not loaded. Please ensure %s and %s are present.", modelFile, scalerFile),
		logger:        logger,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("POST /api/validate", h.handleValidate)
}

type healthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
}

type predictResponse struct {
	Success bool `json:"success"`
	predictor.Result
}

type validateResponse struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	file, err := os.Open(h.indexPath)
	if err != nil {
		h.logger.Warn("frontend not found", zap.String("path", h.indexPath), zap.Error(err))
		respondError(w, http.StatusNotFound, "Frontend not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		respondError(w, http.StatusNotFound, "Frontend not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		ModelsLoaded: h.pipeline.Ready(),
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !h.pipeline.Ready() {
		respondError(w, http.StatusInternalServerError, h.modelsMissing)
		return
	}

	record, err := decodeRecord(r)
	if err != nil {
		h.respondDecodeError(w, err)
		return
	}

	result, err := h.pipeline.Predict(record)
	if err != nil {
		var missing *predictor.MissingFieldsError
		var invalid *predictor.InvalidInputError
		switch {
		case errors.Is(err, predictor.ErrModelUnavailable):
			respondError(w, http.StatusInternalServerError, h.modelsMissing)
		case errors.As(err, &missing):
			respondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing.Fields, ", "))
		case errors.As(err, &invalid):
			respondError(w, http.StatusBadRequest, "Invalid numeric values: "+invalid.Error())
		default:
			h.logger.Error("prediction failed",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
			respondError(w, http.StatusInternalServerError, "Prediction error: "+err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, predictResponse{Success: true, Result: result})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	record, err := decodeRecord(r)
	switch {
	case errors.Is(err, errNoData):
		record = predictor.Record{}
	case err != nil:
		h.respondDecodeError(w, err)
		return
	}

	if violations := predictor.Validate(record); len(violations) > 0 {
		respondJSON(w, http.StatusBadRequest, validateResponse{Valid: false, Errors: violations})
		return
	}
	respondJSON(w, http.StatusOK, validateResponse{Valid: true, Message: "All inputs are valid"})
}

func (h *Handler) respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, errNoData):
		respondError(w, http.StatusBadRequest, "No data provided")
	case errors.As(err, &tooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
	}
}

// decodeRecord reads a JSON object body. An absent or blank body, or a JSON null,
// yields errNoData. Numbers are kept as json.Number so no precision is lost before
// coercion.
func decodeRecord(r *http.Request) (predictor.Record, error) {
	if r.Body == nil {
		return nil, errNoData
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, errNoData
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var body any
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, errors.New("unexpected data after JSON value")
	}

	switch v := body.(type) {
	case nil:
		return nil, errNoData
	case map[string]any:
		return predictor.Record(v), nil
	default:
		return nil, errors.New("request body must be a JSON object")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(payload, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
