package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itzbandhan/sallukobirthday/config"
	"github.com/itzbandhan/sallukobirthday/internal/gateway"
	"github.com/itzbandhan/sallukobirthday/internal/invite"
	"github.com/itzbandhan/sallukobirthday/internal/models"
	"github.com/itzbandhan/sallukobirthday/internal/preview"
	"github.com/itzbandhan/sallukobirthday/internal/store"
	"github.com/itzbandhan/sallukobirthday/web"
)

type Handler struct {
	store    store.Store
	gateway  *gateway.Gateway
	rewriter *preview.Rewriter
	config   *config.Config
	logger   *zap.Logger
}

func NewHandler(s store.Store, cfg *config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	gw := gateway.New(s, cfg.Preview.LookupTimeout, logger)
	return &Handler{
		store:   s,
		gateway: gw,
		rewriter: &preview.Rewriter{
			Domain:    cfg.Preview.Domain,
			ImagePath: cfg.Preview.ImagePath,
			Lookup:    gw.RecipientBySlug,
		},
		config: cfg,
		logger: logger,
	}
}

type RecipientRequest struct {
	Slug          string            `json:"slug"`
	InviteType    models.InviteType `json:"invite_type"`
	NameSingle    string            `json:"name_single"`
	NamePartner1  string            `json:"name_partner1"`
	NamePartner2  string            `json:"name_partner2"`
	CustomMessage string            `json:"custom_message"`
	IsActive      *bool             `json:"is_active"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InvitationPage serves the invitation document. When the request carries a
// recipient slug, the link-preview meta tags are rewritten for that
// recipient before the markup goes out; on any lookup miss or failure the
// base document is served as-is.
func (h *Handler) InvitationPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		slug = r.URL.Query().Get("slug")
	}

	base, err := web.GetFile("index.html")
	if err != nil {
		h.logger.Error("reading invitation template failed", zap.Error(err))
		http.Error(w, "Error loading invitation", http.StatusInternalServerError)
		return
	}

	html := h.rewriter.Rewrite(r.Context(), string(base), slug)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// GetInvitation resolves the renderable content for a visitor session.
// Missing or broken personalization data degrades to the generic card.
func (h *Handler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	settings := h.gateway.Settings(r.Context())
	recipient := h.gateway.RecipientBySlug(r.Context(), slug)

	h.json(w, http.StatusOK, invite.Resolve(settings, recipient))
}

// PreviewImage serves the fixed og:image asset.
func (h *Handler) PreviewImage(w http.ResponseWriter, r *http.Request) {
	content, err := web.GetFile("ogimg.png")
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(content)
}

// Admin handlers

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings(r.Context())
	if err != nil {
		h.handleStoreError(w, err)
		return
	}
	h.json(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings.UpdatedAt = time.Now()

	if err := h.store.SaveSettings(r.Context(), &settings); err != nil {
		h.handleStoreError(w, err)
		return
	}
	h.json(w, http.StatusOK, settings)
}

func (h *Handler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.store.ListRecipients(r.Context())
	if err != nil {
		h.handleStoreError(w, err)
		return
	}
	h.json(w, http.StatusOK, recipients)
}

func (h *Handler) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var req RecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipient, ok := h.recipientFromRequest(w, &req)
	if !ok {
		return
	}
	recipient.ID = uuid.NewString()
	recipient.CreatedAt = time.Now()

	if err := h.store.SaveRecipient(r.Context(), recipient); err != nil {
		h.handleStoreError(w, err)
		return
	}
	h.json(w, http.StatusCreated, recipient)
}

func (h *Handler) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.store.RecipientByID(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	var req RecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipient, ok := h.recipientFromRequest(w, &req)
	if !ok {
		return
	}
	recipient.ID = existing.ID
	recipient.CreatedAt = existing.CreatedAt

	if err := h.store.SaveRecipient(r.Context(), recipient); err != nil {
		h.handleStoreError(w, err)
		return
	}
	h.json(w, http.StatusOK, recipient)
}

func (h *Handler) DeleteRecipient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteRecipient(r.Context(), id); err != nil {
		h.handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recipientFromRequest(w http.ResponseWriter, req *RecipientRequest) (*models.Recipient, bool) {
	if req.Slug == "" {
		h.error(w, http.StatusBadRequest, "slug is required")
		return nil, false
	}

	inviteType := req.InviteType
	if inviteType == "" {
		inviteType = models.InviteSingle
	}
	if !inviteType.Valid() {
		h.error(w, http.StatusBadRequest, "invalid invite_type")
		return nil, false
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.Recipient{
		Slug:          req.Slug,
		InviteType:    inviteType,
		NameSingle:    req.NameSingle,
		NamePartner1:  req.NamePartner1,
		NamePartner2:  req.NamePartner2,
		CustomMessage: req.CustomMessage,
		IsActive:      isActive,
	}, true
}

func (h *Handler) json(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) error(w http.ResponseWriter, status int, message string) {
	h.json(w, status, ErrorResponse{Error: message})
}

func (h *Handler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.error(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrSlugTaken):
		h.error(w, http.StatusConflict, "slug already in use")
	default:
		h.logger.Error("store operation failed", zap.Error(err))
		h.error(w, http.StatusInternalServerError, "internal error")
	}
}
