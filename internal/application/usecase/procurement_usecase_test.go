package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProcurementRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]entity.ProcurementOrder
}

func newFakeProcurementRepo() *fakeProcurementRepo {
	return &fakeProcurementRepo{nextID: 1, orders: map[int64]entity.ProcurementOrder{}}
}

func (r *fakeProcurementRepo) Create(_ context.Context, order *entity.ProcurementOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeProcurementRepo) GetByID(_ context.Context, id int64) (*entity.ProcurementOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := o
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProcurementRepo) List(context.Context, repository.ProcurementFilter) ([]*entity.ProcurementOrder, error) {
	return nil, nil
}

func (r *fakeProcurementRepo) Update(_ context.Context, order *entity.ProcurementOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.orders[order.ID] = *order
	return nil
}

// fakeCatalogRepo catálogo mínimo para resolver material_id en órdenes.
type fakeCatalogRepo struct {
	materials map[int64]*entity.Material
}

func (r *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*entity.Material, error) {
	if m, ok := r.materials[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCatalogRepo) Create(context.Context, *entity.Material) error { return nil }
func (r *fakeCatalogRepo) Update(context.Context, *entity.Material) error { return nil }
func (r *fakeCatalogRepo) Delete(context.Context, int64) error            { return nil }
func (r *fakeCatalogRepo) GetByCode(context.Context, string) (*entity.Material, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeCatalogRepo) List(context.Context, repository.MaterialFilter) ([]*entity.Material, error) {
	return nil, nil
}
func (r *fakeCatalogRepo) ListCategories(context.Context) ([]*entity.MaterialCategory, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCreatorID  = int64(5)
	testApproverID = int64(8)
	catalogMatID   = int64(3)
)

func buildProcurementUseCase() *usecase.ProcurementUseCase {
	catalog := &fakeCatalogRepo{materials: map[int64]*entity.Material{
		catalogMatID: {ID: catalogMatID, Code: "PNT-EPOX", Name: "Pintura epoxi", Unit: "l"},
	}}
	return usecase.NewProcurementUseCase(newFakeProcurementRepo(), catalog, nil, zerolog.Nop())
}

func createOrder(t *testing.T, uc *usecase.ProcurementUseCase) *dto.ProcurementResponse {
	t.Helper()
	matID := catalogMatID
	resp, err := uc.Create(context.Background(), testCreatorID, dto.CreateProcurementRequest{
		OrderNo:    "PO-2026-001",
		MaterialID: &matID,
		Quantity:   decimal.NewFromInt(200),
		UnitPrice:  decimal.RequireFromString("45.90"),
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProcurementCreate_TotalCalculadoEnServidor(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	assert.Equal(t, entity.ProcurementStatusPendingApproval, order.Status,
		"toda orden nueva queda pendiente de aprobación")
	assert.Equal(t, "9180", order.TotalPrice.String(), "total = 200 x 45.90")
	assert.Equal(t, "Pintura epoxi", order.MaterialName, "nombre resuelto desde el catálogo")
	assert.Equal(t, "l", order.Unit)
	require.NotNil(t, order.CreatedBy)
	assert.Equal(t, testCreatorID, *order.CreatedBy)
}

func TestProcurementCreate_SinMaterialNiNombreFalla(t *testing.T) {
	uc := buildProcurementUseCase()
	_, err := uc.Create(context.Background(), testCreatorID, dto.CreateProcurementRequest{
		OrderNo:   "PO-X",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProcurementCreate_CantidadNoPositivaFalla(t *testing.T) {
	uc := buildProcurementUseCase()
	_, err := uc.Create(context.Background(), testCreatorID, dto.CreateProcurementRequest{
		OrderNo:      "PO-X",
		MaterialName: "tornillería",
		Quantity:     decimal.Zero,
		UnitPrice:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve — circuito de aprobación
// ──────────────────────────────────────────────────────────────────────────────

func TestProcurementApprove_ApruebaYSellaAprobador(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	resp, err := uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{
		Approved: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProcurementStatusApproved, resp.Status)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, testApproverID, *resp.ApproverID)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestProcurementApprove_RechazoVuelveABorrador(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	resp, err := uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{
		Approved: false,
		Comment:  "precio fuera de presupuesto",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProcurementStatusDraft, resp.Status,
		"una orden rechazada vuelve a borrador para corregirse")
	assert.Nil(t, resp.ApproverID, "el rechazo no sella aprobador")
}

func TestProcurementApprove_SoloOrdenesPendientes(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	_, err := uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{Approved: true})
	require.NoError(t, err)

	// Una segunda aprobación sobre la orden ya aprobada es inválida.
	_, err = uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{Approved: true})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — solo contenido editable en draft/pending
// ──────────────────────────────────────────────────────────────────────────────

func TestProcurementUpdate_RecalculaTotal(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	newQty := decimal.NewFromInt(100)
	resp, err := uc.Update(context.Background(), order.ID, dto.UpdateProcurementRequest{
		Quantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, "4590", resp.TotalPrice.String(), "el total se recalcula al cambiar la cantidad")
}

func TestProcurementUpdate_ContenidoBloqueadoTrasAprobar(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	_, err := uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{Approved: true})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(1)
	_, err = uc.Update(context.Background(), order.ID, dto.UpdateProcurementRequest{
		UnitPrice: &newPrice,
	})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"una orden aprobada no admite cambios de contenido")
}

func TestProcurementUpdate_AvanceDeEstadoPermitidoTrasAprobar(t *testing.T) {
	uc := buildProcurementUseCase()
	order := createOrder(t, uc)

	_, err := uc.Approve(context.Background(), order.ID, testApproverID, dto.ApproveProcurementRequest{Approved: true})
	require.NoError(t, err)

	ordered := entity.ProcurementStatusOrdered
	resp, err := uc.Update(context.Background(), order.ID, dto.UpdateProcurementRequest{
		Status: &ordered,
	})
	require.NoError(t, err, "el avance de estado logístico no es cambio de contenido")
	assert.Equal(t, entity.ProcurementStatusOrdered, resp.Status)
}
