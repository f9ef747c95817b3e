package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

// SeedFile is the YAML layout accepted by the seed command.
type SeedFile struct {
	Departments []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"departments"`
	Constructions []struct {
		Name        string `yaml:"name"`
		Address     string `yaml:"address"`
		StartDate   string `yaml:"start_date"`
		Inactive    bool   `yaml:"inactive"`
		Description string `yaml:"description"`
		Sectors     []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
		} `yaml:"sectors"`
	} `yaml:"constructions"`
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
}

type SeedReport struct {
	Departments   int
	Constructions int
	Sectors       int
	Categories    int
}

// SeedService loads reference data. Rows are matched by exact name, so
// running the same file twice creates nothing new.
type SeedService interface {
	Seed(ctx context.Context, r io.Reader) (SeedReport, error)
}

type seedService struct {
	log           *logger.Logger
	writer        dataagg.Writer
	resolver      Resolver
	departments   repos.DepartmentRepo
	constructions repos.ConstructionRepo
	sectors       repos.ConstructionSectorRepo
	categories    repos.ExpenseCategoryRepo
}

func NewSeedService(
	log *logger.Logger,
	writer dataagg.Writer,
	resolver Resolver,
	departments repos.DepartmentRepo,
	constructions repos.ConstructionRepo,
	sectors repos.ConstructionSectorRepo,
	categories repos.ExpenseCategoryRepo,
) SeedService {
	return &seedService{
		log:           log.With("service", "SeedService"),
		writer:        writer,
		resolver:      resolver,
		departments:   departments,
		constructions: constructions,
		sectors:       sectors,
		categories:    categories,
	}
}

func (s *seedService) Seed(ctx context.Context, r io.Reader) (SeedReport, error) {
	const op = "seed"
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return SeedReport{}, domainagg.Validation(op, "parse seed file: %v", err)
	}

	var rep SeedReport
	err := s.writer.Execute(ctx, op, func(dbc dbctx.Context) error {
		rep = SeedReport{}
		for _, d := range file.Departments {
			created, err := s.department(dbc, d.Name, d.Description)
			if err != nil {
				return err
			}
			rep.Departments += created
		}
		for _, c := range file.Constructions {
			cons, created, err := s.construction(dbc, c.Name, c.Address, c.StartDate, !c.Inactive, c.Description)
			if err != nil {
				return err
			}
			rep.Constructions += created
			for _, sec := range c.Sectors {
				created, err := s.sector(dbc, cons, sec.Name, sec.Description)
				if err != nil {
					return err
				}
				rep.Sectors += created
			}
		}
		for _, c := range file.Categories {
			created, err := s.category(dbc, c.Name, c.Description)
			if err != nil {
				return err
			}
			rep.Categories += created
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}
	s.log.Info("seed applied",
		"departments", rep.Departments,
		"constructions", rep.Constructions,
		"sectors", rep.Sectors,
		"categories", rep.Categories,
	)
	return rep, nil
}

func (s *seedService) department(dbc dbctx.Context, name, desc string) (int, error) {
	name = strings.TrimSpace(name)
	found, err := s.departments.GetByName(dbc, name)
	if err != nil || found != nil {
		return 0, err
	}
	d, err := s.resolver.Department(dbc, RefName(name))
	if err != nil {
		return 0, err
	}
	if desc = strings.TrimSpace(desc); desc != "" {
		d.Description = desc
		if err := s.departments.Update(dbc, d); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

func (s *seedService) construction(dbc dbctx.Context, name, address, start string, active bool, desc string) (*types.Construction, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, 0, domainagg.Validation("seed", "construction name is required")
	}
	found, err := s.constructions.GetByName(dbc, name)
	if err != nil || found != nil {
		return found, 0, err
	}
	c, err := s.resolver.Construction(dbc, RefName(name))
	if err != nil {
		return nil, 0, err
	}
	c.Address = strings.TrimSpace(address)
	c.Description = strings.TrimSpace(desc)
	c.IsActive = active
	if strings.TrimSpace(start) != "" {
		d, err := dates.Parse(start)
		if err != nil {
			return nil, 0, domainagg.Validation("seed", "construction %q: %v", name, err)
		}
		c.StartDate = d
	}
	if err := s.constructions.Update(dbc, c); err != nil {
		return nil, 0, fmt.Errorf("update construction %q: %w", name, err)
	}
	return c, 1, nil
}

func (s *seedService) sector(dbc dbctx.Context, cons *types.Construction, name, desc string) (int, error) {
	name = strings.TrimSpace(name)
	found, err := s.sectors.GetByName(dbc, cons.ID, name)
	if err != nil || found != nil {
		return 0, err
	}
	sec, err := s.resolver.Sector(dbc, RefName(name), cons)
	if err != nil {
		return 0, err
	}
	if desc = strings.TrimSpace(desc); desc != "" {
		sec.Description = desc
		if err := s.sectors.Update(dbc, sec); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

func (s *seedService) category(dbc dbctx.Context, name, desc string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domainagg.Validation("seed", "category name is required")
	}
	found, err := s.categories.GetByName(dbc, name)
	if err != nil || found != nil {
		return 0, err
	}
	return 1, s.categories.Create(dbc, &types.ExpenseCategory{Name: name, Description: strings.TrimSpace(desc)})
}
