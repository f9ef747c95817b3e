package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

// Resolver turns a Ref into a reference row. An id must exist; a name is
// matched exactly and the row is created with defaults when missing. All
// lookups run on the caller's transaction.
type Resolver interface {
	Department(dbc dbctx.Context, ref Ref) (*types.Department, error)
	Construction(dbc dbctx.Context, ref Ref) (*types.Construction, error)
	// Sector resolves a sector. Names are scoped to construction, which
	// must then be non-nil.
	Sector(dbc dbctx.Context, ref Ref, construction *types.Construction) (*types.ConstructionSector, error)
}

type resolver struct {
	log           *logger.Logger
	departments   repos.DepartmentRepo
	constructions repos.ConstructionRepo
	sectors       repos.ConstructionSectorRepo
}

func NewResolver(
	log *logger.Logger,
	departments repos.DepartmentRepo,
	constructions repos.ConstructionRepo,
	sectors repos.ConstructionSectorRepo,
) Resolver {
	return &resolver{
		log:           log.With("service", "Resolver"),
		departments:   departments,
		constructions: constructions,
		sectors:       sectors,
	}
}

func (r *resolver) Department(dbc dbctx.Context, ref Ref) (*types.Department, error) {
	const op = "resolve.department"
	if ref.ID != nil {
		d, err := r.departments.GetByID(dbc, *ref.ID)
		return d, missingAsValidation(op, "department", *ref.ID, err)
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, domainagg.Validation(op, "department is required")
	}
	d, err := r.departments.GetByName(dbc, name)
	if err != nil || d != nil {
		return d, err
	}
	d = &types.Department{Name: name}
	if err := r.departments.Create(dbc, d); err != nil {
		return nil, err
	}
	r.log.Info("department created from name", "department_id", d.ID, "name", name)
	return d, nil
}

func (r *resolver) Construction(dbc dbctx.Context, ref Ref) (*types.Construction, error) {
	const op = "resolve.construction"
	if ref.ID != nil {
		c, err := r.constructions.GetByID(dbc, *ref.ID)
		return c, missingAsValidation(op, "construction", *ref.ID, err)
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, nil
	}
	c, err := r.constructions.GetByName(dbc, name)
	if err != nil || c != nil {
		return c, err
	}
	c = &types.Construction{Name: name, StartDate: dates.Today(), IsActive: true}
	if err := r.constructions.Create(dbc, c); err != nil {
		return nil, err
	}
	r.log.Info("construction created from name", "construction_id", c.ID, "name", name)
	return c, nil
}

func (r *resolver) Sector(dbc dbctx.Context, ref Ref, construction *types.Construction) (*types.ConstructionSector, error) {
	const op = "resolve.construction_sector"
	if ref.ID != nil {
		s, err := r.sectors.GetByID(dbc, *ref.ID)
		return s, missingAsValidation(op, "construction sector", *ref.ID, err)
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, nil
	}
	if construction == nil {
		return nil, domainagg.Validation(op, "construction sector %q needs a construction", name)
	}
	s, err := r.sectors.GetByName(dbc, construction.ID, name)
	if err != nil || s != nil {
		return s, err
	}
	s = &types.ConstructionSector{Name: name, ConstructionID: construction.ID}
	if err := r.sectors.Create(dbc, s); err != nil {
		return nil, err
	}
	r.log.Info("construction sector created from name", "sector_id", s.ID, "construction_id", construction.ID, "name", name)
	return s, nil
}

func missingAsValidation(op, what string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainagg.Validation(op, "%s %d does not exist", what, id)
	}
	return err
}
