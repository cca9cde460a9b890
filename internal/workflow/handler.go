// AngelaMos | 2026
// handler.go

package workflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/generation"
	"github.com/carterperez-dev/viralboost/internal/middleware"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Handler struct {
	service     *Service
	checkoutURL string
}

func NewHandler(service *Service, checkoutURL string) *Handler {
	return &Handler{service: service, checkoutURL: checkoutURL}
}

// RegisterRoutes mounts the generation endpoints. generationLimiter, when
// non-nil, throttles POST /generations bursts only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	generationLimiter func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/usage", h.GetUsage)

		r.Route("/generations", func(r chi.Router) {
			if generationLimiter != nil {
				r.With(generationLimiter).Post("/", h.Generate)
			} else {
				r.Post("/", h.Generate)
			}
			r.Get("/today", h.ListToday)
			r.Get("/history", h.History)
		})
	})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	sess := NewSession(
		middleware.GetUserID(r.Context()),
		middleware.GetLocation(r.Context()),
	)

	result, err := h.service.Generate(r.Context(), sess, req)
	if err == nil {
		gen := generation.ToGenerationResponse(result.Generation)
		core.Created(w, GenerateResponse{
			Content:    result.Content,
			FullText:   result.Content.FullText(),
			Generation: &gen,
			Saved:      true,
			Usage:      h.service.Usage(sess),
		})
		return
	}

	switch {
	case errors.Is(err, core.ErrUnauthorized), errors.Is(err, core.ErrNotFound):
		core.Unauthorized(w, "sign in to continue")

	case errors.Is(err, ErrValidation):
		core.BadRequest(w, core.FormatValidationError(err))

	case errors.Is(err, ErrQuotaExceeded):
		core.JSON(w, http.StatusForbidden, core.Response{
			Success: false,
			Data: QuotaExceededResponse{
				Usage:       h.service.Usage(sess),
				CheckoutURL: h.checkoutURL,
			},
			Error: &core.ErrorBody{
				Code:    "QUOTA_EXCEEDED",
				Message: "You've used all of today's free generations. Upgrade to Pro for unlimited content.",
			},
		})

	case errors.Is(err, ErrGeneration):
		core.JSONError(w, core.NewAppError(
			err,
			"Something went wrong while generating content. Please try again.",
			http.StatusBadGateway,
			"GENERATION_FAILED",
		))

	case errors.Is(err, ErrPersistence) && result != nil && result.Content != nil:
		core.OK(w, GenerateResponse{
			Content:  result.Content,
			FullText: result.Content.FullText(),
			Saved:    false,
			Warning: &core.ErrorBody{
				Code:    "PERSISTENCE_FAILED",
				Message: "Your content was generated but could not be saved to your history.",
			},
			Usage: h.service.Usage(sess),
		})

	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.openSession(w, r)
	if !ok {
		return
	}

	core.OK(w, h.service.Usage(sess))
}

func (h *Handler) ListToday(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.openSession(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListToday(r.Context(), sess)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, generation.ToGenerationListResponse(list))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			core.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	sess, ok := h.openSession(w, r)
	if !ok {
		return
	}

	list, err := h.service.History(r.Context(), sess, limit)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "generation history is a Pro feature")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, generation.ToGenerationListResponse(list))
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := h.service.OpenSession(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.GetLocation(r.Context()),
	)
	if err != nil {
		// a valid token whose user row is gone surfaces as ErrNotFound
		if errors.Is(err, core.ErrUnauthorized) || errors.Is(err, core.ErrNotFound) {
			core.Unauthorized(w, "sign in to continue")
		} else {
			core.InternalServerError(w, err)
		}
		return nil, false
	}
	return sess, true
}
