package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"lulc_service/internal/core"
	"lulc_service/internal/domain/model"
)

type Handler struct {
	service *core.AnalysisService
}

func NewHandler(service *core.AnalysisService) *Handler {
	return &Handler{service: service}
}

type AnalyzeRequest struct {
	BBox          string                  `json:"bbox"`
	Years         []int                   `json:"years"`
	ReferenceYear int                     `json:"reference_year"`
	Config        *model.ClassifierConfig `json:"config,omitempty"`
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.BBox == "" {
		http.Error(w, "BBox is required", http.StatusBadRequest)
		return
	}
	if len(req.Years) < 2 {
		http.Error(w, "At least two years are required", http.StatusBadRequest)
		return
	}
	if req.ReferenceYear == 0 {
		http.Error(w, "Reference year is required", http.StatusBadRequest)
		return
	}

	cfg := model.DefaultClassifierConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	report, err := h.service.Analyze(r.Context(), core.AnalysisRequest{
		BBox:          req.BBox,
		Years:         req.Years,
		ReferenceYear: req.ReferenceYear,
		Config:        cfg,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error running analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

type ClassifyRequest struct {
	BBox          string                  `json:"bbox"`
	Year          int                     `json:"year"`
	ReferenceYear int                     `json:"reference_year"`
	Config        *model.ClassifierConfig `json:"config,omitempty"`
}

type ClassifyResponse struct {
	Epoch      int                    `json:"epoch"`
	Rows       int                    `json:"rows"`
	Cols       int                    `json:"cols"`
	Labels     []model.LandCoverClass `json:"labels"`
	Statistics *model.EpochStatistics `json:"statistics"`
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.BBox == "" {
		http.Error(w, "BBox is required", http.StatusBadRequest)
		return
	}
	if req.Year == 0 {
		http.Error(w, "Year is required", http.StatusBadRequest)
		return
	}
	if req.ReferenceYear == 0 {
		http.Error(w, "Reference year is required", http.StatusBadRequest)
		return
	}

	cfg := model.DefaultClassifierConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	classMap, stats, err := h.service.ClassifyEpoch(r.Context(), req.BBox, req.Year, req.ReferenceYear, cfg)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error classifying epoch: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ClassifyResponse{
		Epoch:      classMap.Epoch,
		Rows:       classMap.Rows,
		Cols:       classMap.Cols,
		Labels:     classMap.Labels,
		Statistics: stats,
	})
}

func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error listing runs: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
