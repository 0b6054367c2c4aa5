package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// CampaignService defines the campaign operations the handler needs
type CampaignService interface {
	CreateCampaign(ctx context.Context, creatorID string, req *model.CreateCampaignRequest) (*model.Campaign, error)
	GetBySlug(ctx context.Context, slug, viewerID string) (*model.Campaign, error)
	TrackDownload(ctx context.Context, callerID string, req *model.TrackDownloadRequest) error
}

// CampaignHandler handles campaign creation, lookup and download
// tracking
type CampaignHandler struct {
	campaigns CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaigns CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// RegisterRoutes registers authenticated campaign routes
func (h *CampaignHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/campaigns", h.CreateCampaign)
}

// RegisterPublicRoutes registers routes reachable without a token.
// Both sit behind OptionalAuth so an authenticated caller is still
// recognized.
func (h *CampaignHandler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/campaigns/{slug}", h.GetCampaign)
	mux.HandleFunc("POST /v1/campaigns/track-download", h.TrackDownload)
}

// CreateCampaign publishes a new campaign
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creatorID := middleware.GetUserID(ctx)
	if creatorID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCampaignRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	campaign, err := h.campaigns.CreateCampaign(ctx, creatorID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, campaign, nil)
}

// GetCampaign retrieves a campaign by slug
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)

	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(w, model.NewBadRequestError("slug required"))
		return
	}

	campaign, err := h.campaigns.GetBySlug(ctx, slug, viewerID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, campaign, nil)
}

// TrackDownload counts a frame download
func (h *CampaignHandler) TrackDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)

	var req model.TrackDownloadRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.campaigns.TrackDownload(ctx, callerID, &req); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
