package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// MaterialUseCase aplica reglas de negocio para el catálogo de materiales.
// Las respuestas se enriquecen con el stock agregado actual del material.
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	stockRepo repository.StockRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, stockRepo repository.StockRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, stockRepo: stockRepo}
}

// Create da de alta un material. Devuelve ErrDuplicate si el código ya existe.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrValidation
	}
	if in.MinStock.IsNegative() || in.MaxStock.IsNegative() || in.SafetyStock.IsNegative() {
		return nil, domain.ErrValidation
	}
	status := in.Status
	if status == "" {
		status = entity.MaterialStatusActive
	}
	now := time.Now()
	material := &entity.Material{
		CatID:           in.CatID,
		Code:            in.Code,
		Name:            in.Name,
		Brand:           in.Brand,
		Model:           in.Model,
		Specification:   in.Specification,
		Description:     in.Description,
		Unit:            in.Unit,
		Supplier:        in.Supplier,
		SupplierContact: in.SupplierContact,
		MinStock:        in.MinStock,
		MaxStock:        in.MaxStock,
		SafetyStock:     in.SafetyStock,
		UnitCost:        in.UnitCost,
		ProjectID:       in.ProjectID,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, material), nil
}

// GetByID obtiene un material con su stock agregado.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id int64) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, material), nil
}

// List devuelve materiales filtrados por categoría y palabra clave.
func (uc *MaterialUseCase) List(ctx context.Context, q dto.MaterialListQuery) ([]dto.MaterialResponse, error) {
	q.DefaultPage()
	materials, err := uc.repo.List(ctx, repository.MaterialFilter{
		CatID:   q.CatID,
		Keyword: q.Keyword,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, *uc.toResponse(ctx, m))
	}
	return out, nil
}

// ListCategories devuelve las categorías del catálogo.
func (uc *MaterialUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{
			ID:          c.ID,
			MainCat:     c.MainCat,
			SubCat:      c.SubCat,
			CodePrefix:  c.CodePrefix,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out, nil
}

// Update aplica un patch parcial de material.
func (uc *MaterialUseCase) Update(ctx context.Context, id int64, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.CatID != nil {
		material.CatID = in.CatID
	}
	if in.Brand != nil {
		material.Brand = *in.Brand
	}
	if in.Model != nil {
		material.Model = *in.Model
	}
	if in.Specification != nil {
		material.Specification = *in.Specification
	}
	if in.Description != nil {
		material.Description = *in.Description
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.Supplier != nil {
		material.Supplier = *in.Supplier
	}
	if in.SupplierContact != nil {
		material.SupplierContact = *in.SupplierContact
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrValidation
		}
		material.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		material.MaxStock = *in.MaxStock
	}
	if in.SafetyStock != nil {
		material.SafetyStock = *in.SafetyStock
	}
	if in.UnitCost != nil {
		material.UnitCost = *in.UnitCost
	}
	if in.ProjectID != nil {
		material.ProjectID = in.ProjectID
	}
	if in.Status != nil {
		material.Status = *in.Status
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, material), nil
}

// Delete elimina un material del catálogo.
func (uc *MaterialUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// toResponse mapea la entidad con el stock agregado; si la consulta de stock
// falla, se informa cero.
func (uc *MaterialUseCase) toResponse(ctx context.Context, m *entity.Material) *dto.MaterialResponse {
	current, err := uc.stockRepo.TotalByMaterial(ctx, m.ID)
	if err != nil {
		current = decimal.Zero
	}
	return &dto.MaterialResponse{
		ID:              m.ID,
		Code:            m.Code,
		Name:            m.Name,
		CatID:           m.CatID,
		Brand:           m.Brand,
		Model:           m.Model,
		Specification:   m.Specification,
		Description:     m.Description,
		Unit:            m.Unit,
		Supplier:        m.Supplier,
		SupplierContact: m.SupplierContact,
		MinStock:        m.MinStock,
		MaxStock:        m.MaxStock,
		SafetyStock:     m.SafetyStock,
		UnitCost:        m.UnitCost,
		ProjectID:       m.ProjectID,
		Status:          m.Status,
		CurrentStock:    current,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
