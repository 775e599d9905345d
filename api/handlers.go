/*
handlers.go - HTTP API handlers for the quoting system

PURPOSE:
  Exposes the route planning and cost calculation engine via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  the engine.

ENDPOINTS:
  Hubs:
    GET    /api/hubs                 List hubs (optional ?role= filter)
    POST   /api/hubs                 Create/replace hub
    GET    /api/hubs/{id}            Get hub with price list

  Settings:
    GET    /api/settings             Current settings document
    PUT    /api/settings             Replace settings document

  Quotes:
    POST   /api/quotes               Open a planning session
    GET    /api/quotes               List quotes
    GET    /api/quotes/{id}          Get full quote + validation
    POST   /api/quotes/{id}/segments             Add a segment
    PUT    /api/quotes/{id}/segments/{segmentID} Edit a segment
    DELETE /api/quotes/{id}/segments/{segmentID} Remove a segment
    POST   /api/quotes/{id}/regenerate           Reset segments from topology
    PUT    /api/quotes/{id}/fees                 Override fee bundle
    PUT    /api/quotes/{id}/pricing              Margin / declared value / SLA
    PUT    /api/quotes/{id}/labor                Labor settings
    GET    /api/quotes/{id}/validation           Advisory findings
    POST   /api/quotes/{id}/finalize             Freeze and hand off

REQUEST FLOW:
  1. Parse HTTP request
  2. Load quote from store (deserialize payload)
  3. Call engine operation (whole-object recompute)
  4. Persist and serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input
  - 404: Resource not found
  - 409: Conflict (finalized quote, missing hub role)
  - 500: Internal errors
  Quote-shape problems are advisory only and never fail a request.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/meridian/quote-engine/directory"
	"github.com/meridian/quote-engine/engine"
	"github.com/meridian/quote-engine/factory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store           engine.Store
	Directory       *directory.Directory
	SettingsFactory *factory.SettingsFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store engine.Store) *Handler {
	return &Handler{
		Store:           store,
		Directory:       directory.New(store),
		SettingsFactory: factory.NewSettingsFactory(),
	}
}

// sessionSettings reads the settings document, falling back to the
// default preset when none has been saved yet.
func (h *Handler) sessionSettings(ctx context.Context) (engine.SessionDefaults, engine.LaborSettings, error) {
	configJSON, err := h.Store.LoadSettings(ctx)
	if err != nil {
		configJSON = factory.DefaultSettingsJSON()
	}
	return h.SettingsFactory.Parse(configJSON)
}

// =============================================================================
// HUB HANDLERS
// =============================================================================

// ListHubs returns hubs, optionally filtered by role.
// GET /api/hubs?role=authenticator|couturier
func (h *Handler) ListHubs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var hubs []engine.Hub
	var err error
	switch r.URL.Query().Get("role") {
	case string(engine.HubRoleAuthenticator):
		hubs, err = h.Directory.Authenticators(ctx)
	case string(engine.HubRoleCouturier):
		hubs, err = h.Directory.Couturiers(ctx)
	default:
		hubs, err = h.Store.ListHubs(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list hubs", err)
		return
	}

	dtos := make([]HubDTO, len(hubs))
	for i, hub := range hubs {
		dtos[i] = toHubDTO(hub)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHub creates or replaces a hub record.
// POST /api/hubs
func (h *Handler) CreateHub(w http.ResponseWriter, r *http.Request) {
	var req CreateHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Code == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id, code, and name are required", nil)
		return
	}

	hub := engine.Hub{
		ID:      engine.HubID(req.ID),
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Roles:   req.Roles,
		Pricing: req.Pricing,
	}
	if err := h.Store.SaveHub(r.Context(), hub); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save hub", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHubDTO(hub))
}

// GetHub returns a single hub.
// GET /api/hubs/{id}
func (h *Handler) GetHub(w http.ResponseWriter, r *http.Request) {
	hub, err := h.Store.GetHub(r.Context(), engine.HubID(chi.URLParam(r, "id")))
	if err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Hub not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load hub", err)
		return
	}
	writeJSON(w, http.StatusOK, toHubDTO(*hub))
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the current settings document.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	configJSON, err := h.Store.LoadSettings(r.Context())
	if err != nil {
		configJSON = factory.DefaultSettingsJSON()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(configJSON))
}

// UpdateSettings replaces the settings document. The document is parsed
// before saving so a malformed one never reaches the store.
// PUT /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var doc factory.SettingsJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings document", err)
		return
	}
	configJSON, err := h.SettingsFactory.Render(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings document", err)
		return
	}
	if _, _, err := h.SettingsFactory.Parse(configJSON); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings document", err)
		return
	}
	if err := h.Store.SaveSettings(r.Context(), configJSON); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(configJSON))
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// CreateQuote opens a planning session: resolves the hub selection,
// generates the topology, seeds fees and defaults, computes totals.
// POST /api/quotes
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hub1, hub2, err := h.Directory.SelectPair(ctx, engine.HubID(req.Hub1ID), engine.HubID(req.Hub2ID))
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsNotFound(err) {
			status = http.StatusNotFound
		} else if engine.IsClientError(err) {
			status = http.StatusConflict
		}
		writeError(w, status, "Hub selection failed", err)
		return
	}

	defaults, labor, err := h.sessionSettings(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}

	quote, err := engine.NewRouteQuote(engine.PlanInput{
		Tier:          engine.Tier(req.Tier),
		Model:         engine.ServiceModel(req.ServiceModel),
		Variant:       engine.HybridVariant(req.HybridVariant),
		NoSecondHub:   req.NoSecondHub,
		Sender:        engine.Party{Name: req.Sender.Name, Address: req.Sender.Address},
		Buyer:         engine.Party{Name: req.Buyer.Name, Address: req.Buyer.Address},
		Hub1:          hub1,
		Hub2:          hub2,
		DeclaredValue: engine.NewMoney(req.DeclaredValue),
		SLAComment:    req.SLAComment,
		Defaults:      defaults,
		Labor:         labor,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan input", err)
		return
	}

	if err := h.saveQuote(ctx, quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save quote", err)
		return
	}
	writeJSON(w, http.StatusCreated, QuoteDTO{Quote: quote, Validation: engine.ValidateQuote(quote)})
}

// ListQuotes returns quote summaries, newest first.
// GET /api/quotes
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.ListQuotes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list quotes", err)
		return
	}
	dtos := make([]QuoteSummaryDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toQuoteSummaryDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetQuote returns the full quote with advisory validation.
// GET /api/quotes/{id}
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, QuoteDTO{Quote: quote, Validation: engine.ValidateQuote(quote)})
}

// UpdateSegment applies operator edits to one leg and recomputes.
// PUT /api/quotes/{id}/segments/{segmentID}
func (h *Handler) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}

	var req UpdateSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	edit := engine.SegmentEdit{
		Pricing:     req.Pricing.toVariant(),
		Departure:   req.Departure,
		Arrival:     req.Arrival,
		Origin:      req.Origin,
		Destination: req.Destination,
		Notes:       req.Notes,
		Attachments: req.Attachments,
	}
	if req.Provider != nil {
		p := engine.ServiceProvider(*req.Provider)
		edit.Provider = &p
	}

	err := quote.UpdateSegment(engine.SegmentID(chi.URLParam(r, "segmentID")), edit)
	h.finishQuoteEdit(w, r, quote, err)
}

// AddSegment appends an operator-created leg.
// POST /api/quotes/{id}/segments
func (h *Handler) AddSegment(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}

	var req AddSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	seg := engine.RouteSegment{
		Mode:        engine.SegmentMode(req.Mode),
		Provider:    engine.ServiceProvider(req.Provider),
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		Arrival:     req.Arrival,
		Pricing:     req.Pricing.toVariant(),
		Notes:       req.Notes,
	}
	err := quote.AddSegment(seg)
	h.finishQuoteEdit(w, r, quote, err)
}

// DeleteSegment removes a leg.
// DELETE /api/quotes/{id}/segments/{segmentID}
func (h *Handler) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	err := quote.RemoveSegment(engine.SegmentID(chi.URLParam(r, "segmentID")))
	h.finishQuoteEdit(w, r, quote, err)
}

// RegenerateQuote resets the segment list from the topology rule table,
// discarding operator edits wholesale.
// POST /api/quotes/{id}/regenerate
func (h *Handler) RegenerateQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	err := quote.Regenerate(time.Now())
	h.finishQuoteEdit(w, r, quote, err)
}

// UpdateFees overrides the resolved fee bundle.
// PUT /api/quotes/{id}/fees
func (h *Handler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}

	var req UpdateFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := quote.OverrideFees(engine.FeeBundle{
		Authentication: engine.NewMoney(req.Authentication),
		Sewing:         engine.NewMoney(req.Sewing),
		QA:             engine.NewMoney(req.QA),
		TagUnit:        engine.NewMoney(req.TagUnit),
		NFCUnit:        engine.NewMoney(req.NFCUnit),
	})
	h.finishQuoteEdit(w, r, quote, err)
}

// UpdatePricing edits margin, declared value, and SLA comment.
// PUT /api/quotes/{id}/pricing
func (h *Handler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}

	var req UpdatePricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var err error
	if req.MarginType != nil || req.MarginValue != nil {
		margin := quote.Margin
		if req.MarginType != nil {
			mt := engine.MarginType(*req.MarginType)
			if mt != engine.MarginPercentage && mt != engine.MarginAmount {
				writeError(w, http.StatusBadRequest, "Unknown margin type", nil)
				return
			}
			margin.Type = mt
		}
		if req.MarginValue != nil {
			margin.Value = decimal.NewFromFloat(*req.MarginValue)
		}
		err = quote.SetMargin(margin)
	}
	if err == nil && req.DeclaredValue != nil {
		err = quote.SetDeclaredValue(engine.NewMoney(*req.DeclaredValue))
	}
	if err == nil && req.SLAComment != nil {
		err = quote.SetSLAComment(*req.SLAComment)
	}
	h.finishQuoteEdit(w, r, quote, err)
}

// UpdateLabor replaces the session labor settings on the quote.
// PUT /api/quotes/{id}/labor
func (h *Handler) UpdateLabor(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	var req UpdateLaborRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	err := quote.SetLaborSettings(req.Settings)
	h.finishQuoteEdit(w, r, quote, err)
}

// GetValidation returns the advisory findings only.
// GET /api/quotes/{id}/validation
func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	items := engine.ValidateQuote(quote)
	if items == nil {
		items = []engine.ValidationItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// FinalizeQuote freezes the quote and returns the fully resolved object
// for the export/persistence boundary.
// POST /api/quotes/{id}/finalize
func (h *Handler) FinalizeQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.loadQuote(w, r)
	if !ok {
		return
	}
	if err := quote.Finalize(); err != nil {
		writeError(w, http.StatusConflict, "Quote already finalized", err)
		return
	}
	if err := h.saveQuote(r.Context(), quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save quote", err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteDTO{Quote: quote, Validation: engine.ValidateQuote(quote)})
}

// =============================================================================
// QUOTE PERSISTENCE HELPERS
// =============================================================================

// loadQuote fetches and deserializes the quote named in the URL. On
// failure it writes the error response and returns ok=false.
func (h *Handler) loadQuote(w http.ResponseWriter, r *http.Request) (*engine.RouteQuote, bool) {
	rec, err := h.Store.GetQuote(r.Context(), engine.QuoteID(chi.URLParam(r, "id")))
	if err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Quote not found", err)
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to load quote", err)
		return nil, false
	}

	var quote engine.RouteQuote
	if err := json.Unmarshal([]byte(rec.PayloadJSON), &quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode quote", err)
		return nil, false
	}
	return &quote, true
}

// saveQuote serializes and persists a quote.
func (h *Handler) saveQuote(ctx context.Context, quote *engine.RouteQuote) error {
	quote.UpdatedAt = time.Now()
	payload, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return h.Store.SaveQuote(ctx, engine.QuoteRecord{
		ID:          quote.ID,
		Status:      quote.Status,
		Currency:    quote.Currency,
		TotalCost:   quote.Summary.TotalCost,
		ClientPrice: quote.Summary.ClientPrice,
		PayloadJSON: string(payload),
		CreatedAt:   quote.CreatedAt,
		UpdatedAt:   quote.UpdatedAt,
	})
}

// finishQuoteEdit maps an engine edit result to the HTTP response and
// persists the recomputed quote on success.
func (h *Handler) finishQuoteEdit(w http.ResponseWriter, r *http.Request, quote *engine.RouteQuote, err error) {
	if err != nil {
		switch {
		case engine.IsNotFound(err):
			writeError(w, http.StatusNotFound, "Not found", err)
		case engine.IsClientError(err):
			writeError(w, http.StatusConflict, "Edit rejected", err)
		default:
			writeError(w, http.StatusInternalServerError, "Edit failed", err)
		}
		return
	}
	if err := h.saveQuote(r.Context(), quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save quote", err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteDTO{Quote: quote, Validation: engine.ValidateQuote(quote)})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
