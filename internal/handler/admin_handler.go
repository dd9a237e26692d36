package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AdminHandler exposes the ops surface used by the dashboard/ingestion
// pipeline that sits outside the CQC's own scope (§1).
type AdminHandler struct {
	hm *HandlerManager
}

// NewAdminHandler builds the admin handler.
func NewAdminHandler(hm *HandlerManager) *AdminHandler {
	return &AdminHandler{hm: hm}
}

// Register mounts the admin routes behind the service-token middleware.
func (h *AdminHandler) Register(r *mux.Router) {
	admin := r.PathPrefix("/internal").Subrouter()
	admin.Use(ServiceTokenMiddleware(h.hm.serviceSigningKey))
	admin.HandleFunc("/properties", h.createProperty).Methods(http.MethodPost)
}

type createPropertyRequest struct {
	TenantID           string  `json:"tenant_id"`
	Title              string  `json:"title"`
	Price              int64   `json:"price"`
	Bedrooms           int     `json:"bedrooms"`
	Location           string  `json:"location"`
	PropertyType       string  `json:"property_type"`
	PropertyCategory   string  `json:"property_category"`
	IsFeatured         bool    `json:"is_featured"`
	IsOffPlan          bool    `json:"is_off_plan"`
	IsUrgent           bool    `json:"is_urgent"`
	GoldenVisaEligible bool    `json:"golden_visa_eligible"`
	ExpectedROI        float64 `json:"expected_roi"`
}

// createProperty inserts a property and synchronously runs the match
// notifier against it (§4.8: "invoked after a Property insert").
func (h *AdminHandler) createProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.TenantID == "" || req.Title == "" {
		http.Error(w, "tenant_id and title are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tenant, err := h.hm.repos.Tenant().GetByID(ctx, req.TenantID)
	if err != nil {
		http.Error(w, "unknown tenant", http.StatusNotFound)
		return
	}

	property := &domain.Property{
		TenantID:           req.TenantID,
		Title:              req.Title,
		Price:              req.Price,
		Bedrooms:           req.Bedrooms,
		Location:           req.Location,
		PropertyType:       req.PropertyType,
		PropertyCategory:   domain.PropertyCategory(req.PropertyCategory),
		IsFeatured:         req.IsFeatured,
		IsAvailable:        true,
		IsOffPlan:          req.IsOffPlan,
		IsUrgent:           req.IsUrgent,
		GoldenVisaEligible: req.GoldenVisaEligible,
		ExpectedROI:        req.ExpectedROI,
	}
	created, err := h.hm.repos.Property().Create(ctx, property)
	if err != nil {
		logger.Base().Error("failed to create property", zap.String("tenant_id", req.TenantID), zap.Error(err))
		http.Error(w, "failed to create property", http.StatusInternalServerError)
		return
	}

	if h.hm.matchNotifier != nil {
		if err := h.hm.matchNotifier.OnPropertyCreated(ctx, *tenant, *created); err != nil {
			logger.Base().Error("match notifier pass failed", zap.String("property_id", created.ID), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}
