package services

import (
	"context"
	"strings"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

const (
	msgDepartmentChanged   = "Department created/updated"
	msgConstructionChanged = "Construction data changed"
	msgSectorChanged       = "Construction sector data changed"
)

type DepartmentInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ConstructionInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	StartDate   Date    `json:"start_date"`
	EndDate     Date    `json:"end_date"`
	IsActive    *bool   `json:"is_active"`
	Description *string `json:"description"`
}

type SectorInput struct {
	Name         *string `json:"name"`
	Construction Ref     `json:"construction"`
	Description  *string `json:"description"`
}

// ReferenceService manages departments, constructions and their sectors.
// Every committed mutation is announced on the employees group.
type ReferenceService interface {
	ListDepartments(ctx context.Context) ([]types.Department, error)
	GetDepartment(ctx context.Context, id uint) (*types.Department, error)
	CreateDepartment(ctx context.Context, in DepartmentInput) (*types.Department, error)
	UpdateDepartment(ctx context.Context, id uint, in DepartmentInput, partial bool) (*types.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error

	ListConstructions(ctx context.Context, activeOnly bool) ([]types.Construction, error)
	GetConstruction(ctx context.Context, id uint) (*types.Construction, error)
	CreateConstruction(ctx context.Context, in ConstructionInput) (*types.Construction, error)
	UpdateConstruction(ctx context.Context, id uint, in ConstructionInput, partial bool) (*types.Construction, error)
	DeleteConstruction(ctx context.Context, id uint) error

	ListSectors(ctx context.Context, constructionID *uint) ([]types.ConstructionSector, error)
	GetSector(ctx context.Context, id uint) (*types.ConstructionSector, error)
	CreateSector(ctx context.Context, in SectorInput) (*types.ConstructionSector, error)
	UpdateSector(ctx context.Context, id uint, in SectorInput, partial bool) (*types.ConstructionSector, error)
	DeleteSector(ctx context.Context, id uint) error
}

type referenceService struct {
	log           *logger.Logger
	writer        dataagg.Writer
	notifier      realtime.Notifier
	resolver      Resolver
	departments   repos.DepartmentRepo
	constructions repos.ConstructionRepo
	sectors       repos.ConstructionSectorRepo
}

func NewReferenceService(
	log *logger.Logger,
	writer dataagg.Writer,
	notifier realtime.Notifier,
	resolver Resolver,
	departments repos.DepartmentRepo,
	constructions repos.ConstructionRepo,
	sectors repos.ConstructionSectorRepo,
) ReferenceService {
	if notifier == nil {
		notifier = realtime.NopNotifier{}
	}
	return &referenceService{
		log:           log.With("service", "ReferenceService"),
		writer:        writer,
		notifier:      notifier,
		resolver:      resolver,
		departments:   departments,
		constructions: constructions,
		sectors:       sectors,
	}
}

func readCtx(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

func (s *referenceService) ListDepartments(ctx context.Context) ([]types.Department, error) {
	rows, err := s.departments.List(readCtx(ctx))
	return rows, dataagg.MapError("department.list", err)
}

func (s *referenceService) GetDepartment(ctx context.Context, id uint) (*types.Department, error) {
	d, err := s.departments.GetByID(readCtx(ctx), id)
	return d, dataagg.MapError("department.get", err)
}

func (s *referenceService) CreateDepartment(ctx context.Context, in DepartmentInput) (*types.Department, error) {
	d := &types.Department{}
	if err := applyDepartment(d, in, false); err != nil {
		return nil, err
	}
	err := s.writer.Execute(ctx, "department.create", func(dbc dbctx.Context) error {
		return s.departments.Create(dbc, d)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionDepartmentUpdate, msgDepartmentChanged)
	return d, nil
}

func (s *referenceService) UpdateDepartment(ctx context.Context, id uint, in DepartmentInput, partial bool) (*types.Department, error) {
	var d *types.Department
	err := s.writer.Execute(ctx, "department.update", func(dbc dbctx.Context) error {
		var err error
		if d, err = s.departments.GetByID(dbc, id); err != nil {
			return err
		}
		if err := applyDepartment(d, in, partial); err != nil {
			return err
		}
		return s.departments.Update(dbc, d)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionDepartmentUpdate, msgDepartmentChanged)
	return d, nil
}

func (s *referenceService) DeleteDepartment(ctx context.Context, id uint) error {
	err := s.writer.Execute(ctx, "department.delete", func(dbc dbctx.Context) error {
		return s.departments.Delete(dbc, id)
	})
	if domainagg.IsCode(err, domainagg.CodePreconditionFailed) {
		return domainagg.NewError(domainagg.CodePreconditionFailed, "department.delete", "department still has employees", err)
	}
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionDepartmentUpdate, msgDepartmentChanged)
	return nil
}

func applyDepartment(d *types.Department, in DepartmentInput, partial bool) error {
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation("department", "name is required")
		}
		d.Name = name
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	return nil
}

func (s *referenceService) ListConstructions(ctx context.Context, activeOnly bool) ([]types.Construction, error) {
	rows, err := s.constructions.List(readCtx(ctx), activeOnly)
	return rows, dataagg.MapError("construction.list", err)
}

func (s *referenceService) GetConstruction(ctx context.Context, id uint) (*types.Construction, error) {
	c, err := s.constructions.GetByID(readCtx(ctx), id)
	return c, dataagg.MapError("construction.get", err)
}

func (s *referenceService) CreateConstruction(ctx context.Context, in ConstructionInput) (*types.Construction, error) {
	c := &types.Construction{StartDate: dates.Today(), IsActive: true}
	if err := applyConstruction(c, in, false); err != nil {
		return nil, err
	}
	err := s.writer.Execute(ctx, "construction.create", func(dbc dbctx.Context) error {
		return s.constructions.Create(dbc, c)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionCreated, msgConstructionChanged)
	return c, nil
}

func (s *referenceService) UpdateConstruction(ctx context.Context, id uint, in ConstructionInput, partial bool) (*types.Construction, error) {
	var c *types.Construction
	err := s.writer.Execute(ctx, "construction.update", func(dbc dbctx.Context) error {
		var err error
		if c, err = s.constructions.GetByID(dbc, id); err != nil {
			return err
		}
		if err := applyConstruction(c, in, partial); err != nil {
			return err
		}
		return s.constructions.Update(dbc, c)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionUpdated, msgConstructionChanged)
	return c, nil
}

func (s *referenceService) DeleteConstruction(ctx context.Context, id uint) error {
	err := s.writer.Execute(ctx, "construction.delete", func(dbc dbctx.Context) error {
		return s.constructions.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionDeleted, msgConstructionChanged)
	return nil
}

func applyConstruction(c *types.Construction, in ConstructionInput, partial bool) error {
	const op = "construction"
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation(op, "name is required")
		}
		c.Name = name
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.StartDate.Set {
		if in.StartDate.Value == nil {
			return domainagg.Validation(op, "start_date cannot be empty")
		}
		c.StartDate = *in.StartDate.Value
	}
	if in.EndDate.Set || !partial {
		c.EndDate = in.EndDate.Value
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return domainagg.Validation(op, "end_date is before start_date")
	}
	return nil
}

func (s *referenceService) ListSectors(ctx context.Context, constructionID *uint) ([]types.ConstructionSector, error) {
	rows, err := s.sectors.List(readCtx(ctx), constructionID)
	return rows, dataagg.MapError("construction_sector.list", err)
}

func (s *referenceService) GetSector(ctx context.Context, id uint) (*types.ConstructionSector, error) {
	sec, err := s.sectors.GetByID(readCtx(ctx), id)
	return sec, dataagg.MapError("construction_sector.get", err)
}

func (s *referenceService) CreateSector(ctx context.Context, in SectorInput) (*types.ConstructionSector, error) {
	sec := &types.ConstructionSector{}
	err := s.writer.Execute(ctx, "construction_sector.create", func(dbc dbctx.Context) error {
		if err := s.applySector(dbc, sec, in, false); err != nil {
			return err
		}
		return s.sectors.Create(dbc, sec)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionSectorCreated, msgSectorChanged)
	return sec, nil
}

func (s *referenceService) UpdateSector(ctx context.Context, id uint, in SectorInput, partial bool) (*types.ConstructionSector, error) {
	var sec *types.ConstructionSector
	err := s.writer.Execute(ctx, "construction_sector.update", func(dbc dbctx.Context) error {
		var err error
		if sec, err = s.sectors.GetByID(dbc, id); err != nil {
			return err
		}
		if err := s.applySector(dbc, sec, in, partial); err != nil {
			return err
		}
		return s.sectors.Update(dbc, sec)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionSectorUpdated, msgSectorChanged)
	return sec, nil
}

func (s *referenceService) DeleteSector(ctx context.Context, id uint) error {
	err := s.writer.Execute(ctx, "construction_sector.delete", func(dbc dbctx.Context) error {
		return s.sectors.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionConstructionSectorDeleted, msgSectorChanged)
	return nil
}

func (s *referenceService) applySector(dbc dbctx.Context, sec *types.ConstructionSector, in SectorInput, partial bool) error {
	const op = "construction_sector"
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation(op, "name is required")
		}
		sec.Name = name
	}
	if in.Construction.Set || !partial {
		if in.Construction.Empty() {
			return domainagg.Validation(op, "construction is required")
		}
		c, err := s.resolver.Construction(dbc, in.Construction)
		if err != nil {
			return err
		}
		sec.ConstructionID = c.ID
		sec.Construction = nil
	}
	if in.Description != nil {
		sec.Description = strings.TrimSpace(*in.Description)
	}
	return nil
}
