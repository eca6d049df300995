package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workhive/internal/closure/service"
	"workhive/internal/platform/middleware"
	id "workhive/pkg/domain"
	dErrors "workhive/pkg/domain-errors"
	"workhive/pkg/platform/httputil"
	"workhive/pkg/requestcontext"
)

// Service defines the closure orchestration operations the handler exposes.
type Service interface {
	Preview(ctx context.Context, orgID id.OrganizationID) (*service.Preview, error)
	Initiate(ctx context.Context, orgID id.OrganizationID, confirmName string) (*service.InitiateResult, error)
	RegisteredModules() []string
}

// Handler exposes the closure endpoints.
type Handler struct {
	logger       *slog.Logger
	closure      Service
	jwtValidator middleware.JWTValidator
}

func New(closure Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{logger: logger, closure: closure, jwtValidator: jwtValidator}
}

// Register mounts the closure routes with the full middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	router.Get("/organizations/{organizationID}/closure/preview", h.handlePreview)
	router.Post("/organizations/{organizationID}/closure", h.handleInitiate)
	router.Get("/closure/modules", h.handleModules)

	r.Mount("/", router)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrganizationID(chi.URLParam(r, "organizationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	preview, err := h.closure.Preview(ctx, orgID)
	if err != nil {
		h.logServiceError(ctx, "closure preview failed", orgID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, preview)
}

type initiateRequest struct {
	ConfirmName string `json:"confirm_name"`
}

type initiateResponse struct {
	*service.InitiateResult
	ArchiveID string     `json:"archiveId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (h *Handler) handleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrganizationID(chi.URLParam(r, "organizationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.closure.Initiate(ctx, orgID, req.ConfirmName)
	if err != nil {
		h.logServiceError(ctx, "closure initiate failed", orgID, err)
		httputil.WriteError(w, err)
		return
	}

	// a refusal is a conflict, not an error: the caller gets the full
	// blocker list for self-service resolution
	if !result.CanClose {
		httputil.WriteJSON(w, http.StatusConflict, result)
		return
	}

	resp := initiateResponse{InitiateResult: result}
	if result.Archive != nil {
		resp.ArchiveID = result.Archive.ID.String()
		resp.ExpiresAt = &result.Archive.ExpiresAt
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleModules(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{
		"modules": h.closure.RegisteredModules(),
	})
}

func (h *Handler) logServiceError(ctx context.Context, msg string, orgID id.OrganizationID, err error) {
	log := h.logger.WarnContext
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		log = h.logger.ErrorContext
	}
	log(ctx, msg,
		"organization_id", orgID.String(),
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
