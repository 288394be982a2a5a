// Package posts contains the post CRUD controllers.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/posts"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/http/middlewares"
	svc "github.com/dropDatabas3/partnerdesk/internal/http/services/posts"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

const maxPostBodySize = 256 * 1024 // 256KB

// Controller handles the /v1/posts endpoints.
type Controller struct {
	service svc.Service
}

// NewController creates a posts controller.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create handles POST /v1/posts.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)
	if caller == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPostBodySize)
	defer r.Body.Close()

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Create(ctx, caller, req)
	if err != nil {
		writePostError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusCreated, result)
}

// Get handles GET /v1/posts/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)
	if caller == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}

	result, err := c.service.Get(ctx, caller, chi.URLParam(r, "id"))
	if err != nil {
		writePostError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// List handles GET /v1/posts.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)
	if caller == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	query := svc.ListQuery{
		Status: q.Get("status"),
		Author: q.Get("author"),
		Page:   queryInt(q.Get("page")),
		Limit:  queryInt(q.Get("limit")),
	}

	result, err := c.service.List(ctx, caller, query)
	if err != nil {
		writePostError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// Update handles PUT /v1/posts/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)
	if caller == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPostBodySize)
	defer r.Body.Close()

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Update(ctx, caller, chi.URLParam(r, "id"), req)
	if err != nil {
		writePostError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// Delete handles DELETE /v1/posts/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)
	if caller == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}

	if err := c.service.Delete(ctx, caller, chi.URLParam(r, "id")); err != nil {
		writePostError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func writePostError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *svc.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.WriteError(w, apierrors.ErrValidation.WithDetails(vErr.Fields))

	case errors.Is(err, svc.ErrPostNotFound):
		apierrors.WriteError(w, apierrors.ErrNotFound.WithMessage("Post not found"))

	case errors.Is(err, svc.ErrNotOwner):
		apierrors.WriteError(w, apierrors.ErrInsufficientPermissions)

	default:
		logger.From(ctx).Error("post operation failed", logger.Err(err))
		apierrors.WriteError(w, apierrors.ErrInternal)
	}
}

func queryInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
