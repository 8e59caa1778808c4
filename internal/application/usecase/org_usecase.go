package usecase

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// OrgUseCase lecturas de la estructura organizativa (departamentos y equipos).
// Las altas llegan por la importación Excel; aquí solo se consulta.
type OrgUseCase struct {
	deptRepo repository.DepartmentRepository
	teamRepo repository.TeamRepository
}

// NewOrgUseCase construye el caso de uso.
func NewOrgUseCase(deptRepo repository.DepartmentRepository, teamRepo repository.TeamRepository) *OrgUseCase {
	return &OrgUseCase{deptRepo: deptRepo, teamRepo: teamRepo}
}

// ListDepartments devuelve todos los departamentos.
func (uc *OrgUseCase) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	return uc.deptRepo.List(ctx)
}

// ListTeams devuelve todos los equipos.
func (uc *OrgUseCase) ListTeams(ctx context.Context) ([]*entity.Team, error) {
	return uc.teamRepo.List(ctx)
}
