// Package handlers maps the HTTP API onto the entity store and the
// assignment workflow.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"property-management/internal/config"
	"property-management/internal/dto"
	"property-management/internal/logger"
	"property-management/internal/metrics"
	"property-management/internal/store"
)

// Probe is the database surface the health and metrics endpoints read.
type Probe interface {
	Latency(ctx context.Context) (time.Duration, error)
	PoolStats() (open, inUse int)
}

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	store   *store.Store
	assign  Assigner
	metrics *metrics.Registry
	probe   Probe
	cfg     *config.Config
	log     *logger.Logger
	now     func() time.Time
}

// NewHandler creates a handler. probe may be nil, in which case health
// reports the database as unknown.
func NewHandler(cfg *config.Config, st *store.Store, assign Assigner, reg *metrics.Registry, probe Probe, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Get()
	}
	return &Handler{
		store:   st,
		assign:  assign,
		metrics: reg,
		probe:   probe,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.ErrorResponse{Detail: msg})
}

// fail maps store and validation errors onto HTTP responses. entity names
// the resource in not-found and conflict messages.
func (h *Handler) fail(c *gin.Context, err error, entity string) {
	var verr *dto.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: verr.Fields})
	case errors.Is(err, store.ErrNotFound):
		detail(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrHasLeases):
		detail(c, http.StatusConflict, entity+" has leases")
	case errors.Is(err, store.ErrDuplicate):
		if entity == "Tenant" {
			detail(c, http.StatusConflict, "Email already registered")
			return
		}
		detail(c, http.StatusConflict, entity+" already exists")
	case errors.Is(err, store.ErrReferenced):
		detail(c, http.StatusConflict, entity+" is referenced by other records")
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		c.Status(499)
	default:
		h.log.WithContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes and validates the body into v, answering 422 on
// malformed input or a failed binding rule.
func bindJSON(c *gin.Context, v interface{}) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: dto.NewValidationError(verrs).Fields})
		return false
	}

	fe := dto.FieldError{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error.jsondecode"}
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		fe.Msg, fe.Type = "field required", "value_error.missing"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fe.Loc = []string{"body", typeErr.Field}
		fe.Msg = "value is not a valid " + typeErr.Type.String()
		fe.Type = "type_error"
	}
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: []dto.FieldError{fe}})
	return false
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: []dto.FieldError{{
			Loc:  []string{"path", name},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}})
		return 0, false
	}
	return uint(id), true
}

// listOptions reads skip, limit and status from the query string.
func listOptions(c *gin.Context) (store.ListOptions, bool) {
	opts := store.ListOptions{Status: c.Query("status")}

	var fields []dto.FieldError
	parse := func(name string, dst *int, def int) {
		raw := c.Query(name)
		if raw == "" {
			*dst = def
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields = append(fields, dto.FieldError{
				Loc:  []string{"query", name},
				Msg:  "value is not a valid non-negative integer",
				Type: "type_error.integer",
			})
			return
		}
		*dst = n
	}
	parse("skip", &opts.Skip, 0)
	parse("limit", &opts.Limit, store.DefaultLimit)

	if raw := c.Query("property_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			id := uint(n)
			opts.PropertyID = &id
		} else {
			fields = append(fields, dto.FieldError{Loc: []string{"query", "property_id"}, Msg: "value is not a valid integer", Type: "type_error.integer"})
		}
	}
	if raw := c.Query("tenant_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			id := uint(n)
			opts.TenantID = &id
		} else {
			fields = append(fields, dto.FieldError{Loc: []string{"query", "tenant_id"}, Msg: "value is not a valid integer", Type: "type_error.integer"})
		}
	}

	if len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: fields})
		return opts, false
	}
	return opts, true
}

// checkRefs answers 404 when a referenced property or tenant does not exist.
func (h *Handler) checkRefs(c *gin.Context, propertyID, tenantID *uint) bool {
	ctx := c.Request.Context()
	if propertyID != nil {
		ok, err := h.store.Properties.Exists(ctx, *propertyID)
		if err != nil {
			h.fail(c, err, "Property")
			return false
		}
		if !ok {
			detail(c, http.StatusNotFound, "Property not found")
			return false
		}
	}
	if tenantID != nil {
		ok, err := h.store.Tenants.Exists(ctx, *tenantID)
		if err != nil {
			h.fail(c, err, "Tenant")
			return false
		}
		if !ok {
			detail(c, http.StatusNotFound, "Tenant not found")
			return false
		}
	}
	return true
}

// refsFromFields extracts property_id and tenant_id updates for checkRefs.
func refsFromFields(fields map[string]interface{}) (propertyID, tenantID *uint) {
	if v, ok := fields["property_id"].(uint); ok {
		propertyID = &v
	}
	if v, ok := fields["tenant_id"].(uint); ok {
		tenantID = &v
	}
	return propertyID, tenantID
}
