package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ProcurementNotifier avisa al creador de una orden cuando se resuelve su aprobación.
type ProcurementNotifier interface {
	NotifyProcurementDecision(ctx context.Context, order *entity.ProcurementOrder, approved bool)
}

// ProcurementUseCase aplica reglas de negocio para órdenes de compra,
// incluido el circuito de aprobación.
type ProcurementUseCase struct {
	repo         repository.ProcurementRepository
	materialRepo repository.MaterialRepository
	notifier     ProcurementNotifier
	log          zerolog.Logger
}

// NewProcurementUseCase construye el caso de uso. notifier puede ser nil.
func NewProcurementUseCase(repo repository.ProcurementRepository, materialRepo repository.MaterialRepository, notifier ProcurementNotifier, log zerolog.Logger) *ProcurementUseCase {
	return &ProcurementUseCase{repo: repo, materialRepo: materialRepo, notifier: notifier, log: log}
}

// Create da de alta una orden en estado pending_approval. El total se calcula
// siempre en servidor como cantidad x precio unitario.
func (uc *ProcurementUseCase) Create(ctx context.Context, createdBy int64, in dto.CreateProcurementRequest) (*dto.ProcurementResponse, error) {
	if in.OrderNo == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrValidation
	}
	materialName := in.MaterialName
	unit := in.Unit
	if in.MaterialID != nil {
		material, err := uc.materialRepo.GetByID(ctx, *in.MaterialID)
		if err != nil {
			return nil, err
		}
		if materialName == "" {
			materialName = material.Name
		}
		if unit == "" {
			unit = material.Unit
		}
	}
	if materialName == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	order := &entity.ProcurementOrder{
		OrderNo:         in.OrderNo,
		MaterialID:      in.MaterialID,
		MaterialName:    materialName,
		Quantity:        in.Quantity,
		Unit:            unit,
		UnitPrice:       in.UnitPrice,
		TotalPrice:      in.Quantity.Mul(in.UnitPrice),
		Supplier:        in.Supplier,
		SupplierContact: in.SupplierContact,
		OrderDate:       in.OrderDate.Ptr(),
		DeliveryDate:    in.DeliveryDate.Ptr(),
		Status:          entity.ProcurementStatusPendingApproval,
		ProjectID:       in.ProjectID,
		TaskID:          in.TaskID,
		CreatedBy:       &createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return procurementToResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *ProcurementUseCase) GetByID(ctx context.Context, id int64) (*dto.ProcurementResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return procurementToResponse(order), nil
}

// List devuelve órdenes filtradas por estado y proyecto.
func (uc *ProcurementUseCase) List(ctx context.Context, q dto.ProcurementListQuery) ([]dto.ProcurementResponse, error) {
	q.DefaultPage()
	orders, err := uc.repo.List(ctx, repository.ProcurementFilter{
		Status:    q.Status,
		ProjectID: q.ProjectID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProcurementResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *procurementToResponse(o))
	}
	return out, nil
}

// Update aplica un patch parcial. Solo órdenes en borrador o pendientes admiten
// cambios de contenido; el total se recalcula si cambia cantidad o precio.
func (uc *ProcurementUseCase) Update(ctx context.Context, id int64, in dto.UpdateProcurementRequest) (*dto.ProcurementResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	editable := order.Status == entity.ProcurementStatusDraft || order.Status == entity.ProcurementStatusPendingApproval
	contentChange := in.MaterialName != nil || in.Quantity != nil || in.Unit != nil || in.UnitPrice != nil ||
		in.Supplier != nil || in.SupplierContact != nil || in.OrderDate != nil || in.DeliveryDate != nil
	if contentChange && !editable {
		return nil, domain.ErrValidation
	}
	if in.MaterialName != nil {
		order.MaterialName = *in.MaterialName
	}
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrValidation
		}
		order.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		order.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrValidation
		}
		order.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		order.Supplier = *in.Supplier
	}
	if in.SupplierContact != nil {
		order.SupplierContact = *in.SupplierContact
	}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.Ptr()
	}
	if in.DeliveryDate != nil {
		order.DeliveryDate = in.DeliveryDate.Ptr()
	}
	if in.ActualDeliveryDate != nil {
		order.ActualDeliveryDate = in.ActualDeliveryDate.Ptr()
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	order.TotalPrice = order.Quantity.Mul(order.UnitPrice)
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return procurementToResponse(order), nil
}

// Approve resuelve la aprobación de una orden pendiente: approved la pasa a
// approved, rechazada vuelve a draft. Avisa al creador en segundo plano.
func (uc *ProcurementUseCase) Approve(ctx context.Context, id, approverID int64, in dto.ApproveProcurementRequest) (*dto.ProcurementResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.ProcurementStatusPendingApproval {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	if in.Approved {
		order.Status = entity.ProcurementStatusApproved
		order.ApproverID = &approverID
		order.ApprovedAt = &now
	} else {
		order.Status = entity.ProcurementStatusDraft
	}
	order.UpdatedAt = now
	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	uc.notifyDecision(order, in.Approved)
	return procurementToResponse(order), nil
}

func (uc *ProcurementUseCase) notifyDecision(order *entity.ProcurementOrder, approved bool) {
	if uc.notifier == nil || order.CreatedBy == nil {
		return
	}
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		uc.notifier.NotifyProcurementDecision(ctx, &snapshot, approved)
	}()
}

func procurementToResponse(o *entity.ProcurementOrder) *dto.ProcurementResponse {
	if o == nil {
		return nil
	}
	return &dto.ProcurementResponse{
		ID:                 o.ID,
		OrderNo:            o.OrderNo,
		MaterialID:         o.MaterialID,
		MaterialName:       o.MaterialName,
		Quantity:           o.Quantity,
		Unit:               o.Unit,
		UnitPrice:          o.UnitPrice,
		TotalPrice:         o.TotalPrice,
		Supplier:           o.Supplier,
		SupplierContact:    o.SupplierContact,
		OrderDate:          o.OrderDate,
		DeliveryDate:       o.DeliveryDate,
		ActualDeliveryDate: o.ActualDeliveryDate,
		Status:             o.Status,
		ApproverID:         o.ApproverID,
		ApprovedAt:         o.ApprovedAt,
		ProjectID:          o.ProjectID,
		TaskID:             o.TaskID,
		CreatedBy:          o.CreatedBy,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
