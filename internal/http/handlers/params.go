package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
)

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domainagg.Validation("http.param", "invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// optionalUintQuery returns nil when the query parameter is absent or empty.
func optionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, domainagg.Validation("http.query", "invalid %s %q", name, raw)
	}
	id := uint(v)
	return &id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainagg.NewError(domainagg.CodeValidation, "http.bind", "invalid request body: "+err.Error(), err)
	}
	return nil
}

// isPatch reports whether the request is a partial update.
func isPatch(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
