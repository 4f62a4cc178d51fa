package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/vfarias/promoforge/internal/fetcher"
	"github.com/vfarias/promoforge/internal/models"
	"github.com/vfarias/promoforge/internal/resolver"
	"github.com/vfarias/promoforge/internal/share"
)

type productResolver interface {
	Resolve(ctx context.Context, input string, opts resolver.Options) (*models.ProductRecord, error)
}

type Handlers struct {
	resolver productResolver
	fetcher  *fetcher.Fetcher
	logger   *slog.Logger
}

func NewHandlers(r productResolver, f *fetcher.Fetcher, logger *slog.Logger) *Handlers {
	return &Handlers{
		resolver: r,
		fetcher:  f,
		logger:   logger,
	}
}

// ResolveRequest asks for one product resolution.
type ResolveRequest struct {
	Input string `json:"input"`
	Store string `json:"store"`
}

// Resolve handles product resolution requests.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	traceID := uuid.NewString()
	w.Header().Set("X-Trace-Id", traceID)

	record, err := h.resolver.Resolve(r.Context(), req.Input, resolver.Options{
		Store: models.Store(req.Store),
	})
	if err != nil {
		var rerr *models.ResolveError
		if errors.As(err, &rerr) {
			h.logger.Error("resolution failed",
				"traceID", traceID, "kind", rerr.Kind, "error", err, "attempts", rerr.Attempts)
			h.respondError(w, statusForKind(rerr.Kind), rerr.Message, string(rerr.Kind))
			return
		}
		h.logger.Error("resolution failed", "traceID", traceID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "erro inesperado", string(models.FailUnknown))
		return
	}

	h.logger.Info("resolution succeeded", "traceID", traceID, "name", record.Name)
	h.respondJSON(w, http.StatusOK, record)
}

// MessageRequest carries the (possibly user-edited) record fields plus share
// options for message formatting.
type MessageRequest struct {
	Name          string `json:"name"`
	OriginalPrice string `json:"original_price"`
	CurrentPrice  string `json:"current_price"`
	SourceURL     string `json:"source_url"`
	CouponCode    string `json:"coupon_code"`
	CustomLink    string `json:"custom_link"`
}

type MessageResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Message formats the promotional WhatsApp message for a record.
func (h *Handlers) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	if req.Name == "" || req.CurrentPrice == "" {
		h.respondError(w, http.StatusBadRequest, "name and current_price are required", "")
		return
	}

	record := &models.ProductRecord{
		Name:          req.Name,
		OriginalPrice: req.OriginalPrice,
		CurrentPrice:  req.CurrentPrice,
		SourceURL:     req.SourceURL,
	}

	message := share.FormatMessage(record, share.MessageOptions{
		CouponCode: req.CouponCode,
		CustomLink: req.CustomLink,
	})

	h.respondJSON(w, http.StatusOK, MessageResponse{
		Message:     message,
		WhatsAppURL: share.WhatsAppLink(message),
	})
}

// Image relays a product image so the browser can preview and download it
// without tripping over cross-origin rules.
func (h *Handlers) Image(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		h.respondError(w, http.StatusBadRequest, "url query parameter is required", "")
		return
	}

	body, contentType, err := h.fetcher.FetchImage(r.Context(), imageURL)
	if err != nil {
		h.logger.Error("failed to fetch image", "url", imageURL, "error", err)
		h.respondError(w, http.StatusBadGateway, "não foi possível baixar a imagem", "")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if name := r.URL.Query().Get("name"); name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForKind(kind models.FailureKind) int {
	switch kind {
	case models.FailInvalidInput:
		return http.StatusBadRequest
	case models.FailIncompleteData:
		return http.StatusUnprocessableEntity
	case models.FailUnreachable, models.FailUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message, kind string) {
	resp := map[string]string{"error": message}
	if kind != "" {
		resp["kind"] = kind
	}
	h.respondJSON(w, status, resp)
}
