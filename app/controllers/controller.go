package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
)

// fail maps a domain error onto the HTTP error envelope. Every controller
// funnels service errors through here so the mapping stays in one place.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrForbidden):
		c.Forbidden()
	case errors.Is(err, models.ErrNotFound):
		c.NotFound()
	case errors.Is(err, models.ErrUsernameTaken):
		c.Error(http.StatusConflict, "Username already taken")
	case errors.Is(err, models.ErrConflict):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrEmptyCart):
		c.Error(http.StatusBadRequest, "Cart is empty")
	case models.IsInsufficientStock(err):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidTransition):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		c.Error(http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}

// objectID parses the named path parameter as an ObjectID; on failure it
// sends a 400 and reports false.
func objectID(c *ctx.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid "+param)
		return primitive.NilObjectID, false
	}
	return id, true
}

// hexID parses an ObjectID supplied in a request body; on failure it sends a
// 400 naming the offending field and reports false.
func hexID(c *ctx.Context, hex, field string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid "+field)
		return primitive.NilObjectID, false
	}
	return id, true
}

// callerID parses the authenticated identity's ID. A token that carries a
// malformed subject should never validate, so failure here is a 401.
func callerID(c *ctx.Context) (primitive.ObjectID, bool) {
	ident := c.MustIdentity()
	id, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		c.Unauthorized()
		return primitive.NilObjectID, false
	}
	return id, true
}

// pageParams reads ?page= and ?limit= with sane defaults and caps.
func pageParams(c *ctx.Context) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
