// Package admin contains the user administration controllers.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/admin"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/http/middlewares"
	svc "github.com/dropDatabas3/partnerdesk/internal/http/services/admin"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

const maxUserBodySize = 64 * 1024 // 64KB

// UsersController handles the /v1/admin/users endpoints.
type UsersController struct {
	service svc.UsersService
}

// NewUsersController creates a users admin controller.
func NewUsersController(service svc.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List handles GET /v1/admin/users.
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	query := svc.ListQuery{
		Role:  q.Get("role"),
		Query: q.Get("q"),
		Page:  queryInt(q.Get("page")),
		Limit: queryInt(q.Get("limit")),
	}
	if v := q.Get("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.WriteError(w, apierrors.ErrValidation.WithMessage("active must be true or false"))
			return
		}
		query.Active = &b
	}

	result, err := c.service.List(ctx, query)
	if err != nil {
		writeUserError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// Get handles GET /v1/admin/users/{id}.
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := c.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeUserError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// Create handles POST /v1/admin/users.
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUserBodySize)
	defer r.Body.Close()

	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Create(ctx, req)
	if err != nil {
		writeUserError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusCreated, result)
}

// Update handles PUT /v1/admin/users/{id}.
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUserBodySize)
	defer r.Body.Close()

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Update(ctx, caller, chi.URLParam(r, "id"), req)
	if err != nil {
		writeUserError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

// Delete handles DELETE /v1/admin/users/{id}.
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middlewares.IdentityFrom(ctx)

	if err := c.service.Delete(ctx, caller, chi.URLParam(r, "id")); err != nil {
		writeUserError(ctx, w, err)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func writeUserError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *svc.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.WriteError(w, apierrors.ErrValidation.WithDetails(vErr.Fields))

	case errors.Is(err, svc.ErrUserNotFound):
		apierrors.WriteError(w, apierrors.ErrNotFound.WithMessage("User not found"))

	case errors.Is(err, svc.ErrEmailTaken):
		apierrors.WriteError(w, apierrors.ErrEmailExists)

	case errors.Is(err, svc.ErrSelfTarget):
		apierrors.WriteError(w, apierrors.ErrValidation.WithMessage("You cannot remove or deactivate your own account"))

	default:
		logger.From(ctx).Error("user operation failed", logger.Err(err))
		apierrors.WriteError(w, apierrors.ErrInternal)
	}
}

func queryInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
