package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gearshare-backend/internal/catalog"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/pricing"
	"gearshare-backend/internal/service"
)

// Handler serves the JSON endpoints consumed by the listing form.
type Handler struct {
	catalog  *catalog.Catalog
	engine   *pricing.Engine
	listings service.ListingService
}

func NewHandler(cat *catalog.Catalog, engine *pricing.Engine, listings service.ListingService) *Handler {
	return &Handler{catalog: cat, engine: engine, listings: listings}
}

// NewRouter wires every route onto a mux router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/catalog", h.ListCatalog).Methods(http.MethodGet)
	api.HandleFunc("/catalog/detect", h.DetectEquipment).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{id}", h.GetEquipment).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{id}/condition-adjusted", h.ConditionAdjusted).Methods(http.MethodGet)

	api.HandleFunc("/pricing/duration-options", h.DurationOptions).Methods(http.MethodGet)
	api.HandleFunc("/pricing/calculate", h.Calculate).Methods(http.MethodPost)
	api.HandleFunc("/pricing/validate-rate", h.ValidateRate).Methods(http.MethodPost)
	api.HandleFunc("/pricing/validate-deposit", h.ValidateDeposit).Methods(http.MethodPost)

	api.HandleFunc("/listings/suggest", h.SuggestListing).Methods(http.MethodPost)
	api.HandleFunc("/listings", h.CreateListing).Methods(http.MethodPost)
	api.HandleFunc("/listings", h.ListListings).Methods(http.MethodGet)
	api.HandleFunc("/listings/{id}", h.GetListing).Methods(http.MethodGet)

	return r
}

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, h.catalog.ByCategory(domain.EquipmentCategory(category)))
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.All())
}

func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	rec := h.catalog.GetByID(mux.Vars(r)["id"])
	if rec == nil {
		http.Error(w, "Equipment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type detectResponse struct {
	Matched   bool                    `json:"matched"`
	Equipment *domain.EquipmentRecord `json:"equipment,omitempty"`
}

func (h *Handler) DetectEquipment(w http.ResponseWriter, r *http.Request) {
	rec := h.catalog.FindByText(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, detectResponse{Matched: rec != nil, Equipment: rec})
}

func (h *Handler) ConditionAdjusted(w http.ResponseWriter, r *http.Request) {
	condition := domain.ConditionGrade(r.URL.Query().Get("condition"))
	if condition == "" {
		condition = domain.ConditionExcellent
	}
	adjusted := h.engine.ConditionAdjustedPricing(mux.Vars(r)["id"], condition)
	if adjusted == nil {
		http.Error(w, "Equipment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, adjusted)
}

func (h *Handler) DurationOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.DurationOptions())
}

type calculateRequest struct {
	EquipmentID      string              `json:"equipment_id"`
	PurchasePrice    int                 `json:"purchase_price"`
	CustomDailyRate  *domain.PriceRange  `json:"custom_daily_rate"`
	Duration         domain.DurationTier `json:"duration"`
	IncludeInsurance bool                `json:"include_insurance"`
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var source pricing.PriceSource
	switch {
	case req.EquipmentID != "":
		source = pricing.CatalogSource(req.EquipmentID)
	case req.CustomDailyRate != nil:
		source = pricing.ManualSource(req.PurchasePrice, *req.CustomDailyRate)
	default:
		http.Error(w, pricing.ErrNoPriceSource.Error(), http.StatusBadRequest)
		return
	}

	calc, err := h.engine.Calculate(source, req.Duration, req.IncludeInsurance)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

type validateRateRequest struct {
	DailyRate     int                   `json:"daily_rate"`
	EquipmentID   string                `json:"equipment_id"`
	PurchasePrice int                   `json:"purchase_price"`
	Condition     domain.ConditionGrade `json:"condition"`
}

func (h *Handler) ValidateRate(w http.ResponseWriter, r *http.Request) {
	var req validateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ValidateDailyRate(req.DailyRate, req.EquipmentID, req.PurchasePrice, req.Condition))
}

type validateDepositRequest struct {
	DepositAmount int    `json:"deposit_amount"`
	EquipmentID   string `json:"equipment_id"`
	PurchasePrice int    `json:"purchase_price"`
}

func (h *Handler) ValidateDeposit(w http.ResponseWriter, r *http.Request) {
	var req validateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ValidateDeposit(req.DepositAmount, req.EquipmentID, req.PurchasePrice))
}

type suggestListingRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Condition   domain.ConditionGrade `json:"condition"`
}

func (h *Handler) SuggestListing(w http.ResponseWriter, r *http.Request) {
	var req suggestListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	suggestion, err := h.listings.SuggestListing(r.Context(), req.Title, req.Description, req.Condition)
	if err != nil {
		http.Error(w, "Failed to build suggestion", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.listings.CreateListing(r.Context(), &listing); err != nil {
		logger.Error("Failed to create listing", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		logger.Error("Failed to fetch listing", "error", err)
		http.Error(w, "Failed to fetch listing", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

type listResponse struct {
	Listings []domain.Listing `json:"listings"`
	Total    int32            `json:"total"`
}

func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	page := parseInt32(r.URL.Query().Get("page"), 1)
	pageSize := parseInt32(r.URL.Query().Get("page_size"), 20)

	var (
		listings []domain.Listing
		total    int32
		err      error
	)
	if ownerID := r.URL.Query().Get("owner_id"); ownerID != "" {
		listings, total, err = h.listings.ListMyListings(r.Context(), ownerID, page, pageSize)
	} else {
		listings, total, err = h.listings.ListListings(r.Context(), r.URL.Query().Get("category"), page, pageSize)
	}
	if err != nil {
		logger.Error("Failed to list listings", "error", err)
		http.Error(w, "Failed to list listings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Listings: listings, Total: total})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
