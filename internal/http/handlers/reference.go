package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/http/response"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

// ReferenceHandler serves departments, constructions and construction
// sectors.
type ReferenceHandler struct {
	reference services.ReferenceService
}

func NewReferenceHandler(reference services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	rows, err := h.reference.ListDepartments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *ReferenceHandler) GetDepartment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	d, err := h.reference.GetDepartment(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, d)
}

func (h *ReferenceHandler) CreateDepartment(c *gin.Context) {
	var in services.DepartmentInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	d, err := h.reference.CreateDepartment(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, d)
}

func (h *ReferenceHandler) UpdateDepartment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in services.DepartmentInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	d, err := h.reference.UpdateDepartment(c.Request.Context(), id, in, isPatch(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, d)
}

func (h *ReferenceHandler) DeleteDepartment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.reference.DeleteDepartment(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/constructions/?active=true
func (h *ReferenceHandler) ListConstructions(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.FromError(c, domainagg.Validation("http.query", "invalid active %q", raw))
			return
		}
		activeOnly = v
	}
	rows, err := h.reference.ListConstructions(c.Request.Context(), activeOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *ReferenceHandler) GetConstruction(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.GetConstruction(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ReferenceHandler) CreateConstruction(c *gin.Context) {
	var in services.ConstructionInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.CreateConstruction(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ReferenceHandler) UpdateConstruction(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in services.ConstructionInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.UpdateConstruction(c.Request.Context(), id, in, isPatch(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ReferenceHandler) DeleteConstruction(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.reference.DeleteConstruction(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/construction-sectors/?construction=
func (h *ReferenceHandler) ListSectors(c *gin.Context) {
	constructionID, err := optionalUintQuery(c, "construction")
	if err != nil {
		response.FromError(c, err)
		return
	}
	rows, err := h.reference.ListSectors(c.Request.Context(), constructionID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *ReferenceHandler) GetSector(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.GetSector(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ReferenceHandler) CreateSector(c *gin.Context) {
	var in services.SectorInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.CreateSector(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ReferenceHandler) UpdateSector(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in services.SectorInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	row, err := h.reference.UpdateSector(c.Request.Context(), id, in, isPatch(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ReferenceHandler) DeleteSector(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.reference.DeleteSector(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondNoContent(c)
}
