package inventory

import (
	"context"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ListStock devuelve los registros de existencias según filtros.
func (uc *UseCase) ListStock(ctx context.Context, q dto.StockListQuery) ([]dto.StockResponse, error) {
	q.DefaultPage()
	records, err := uc.stockRepo.List(ctx, repository.StockFilter{
		MaterialID: q.MaterialID,
		Warehouse:  q.Warehouse,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.StockResponse{
			ID:                 r.ID,
			MaterialID:         r.MaterialID,
			BatchNo:            r.BatchNo,
			Quantity:           r.Quantity,
			Warehouse:          r.Warehouse,
			Location:           r.Location,
			QCStatus:           r.QCStatus,
			ProcurementOrderID: r.ProcurementOrderID,
			UpdatedAt:          r.UpdatedAt,
		})
	}
	return out, nil
}

// ListLedger devuelve el historial de movimientos, del más reciente al más antiguo.
func (uc *UseCase) ListLedger(ctx context.Context, q dto.LedgerListQuery) ([]dto.LedgerResponse, error) {
	q.DefaultPage()
	entries, err := uc.ledgerRepo.List(ctx, repository.LedgerFilter{
		MaterialID: q.MaterialID,
		Type:       q.Type,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerResponse{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			StockID:       e.StockID,
			MaterialID:    e.MaterialID,
			Type:          e.Type,
			Quantity:      e.Quantity,
			BeforeQty:     e.BeforeQty,
			AfterQty:      e.AfterQty,
			RelatedTaskID: e.RelatedTaskID,
			RelatedOrder:  e.RelatedOrderID,
			OperatorID:    e.OperatorID,
			OperatorName:  e.OperatorName,
			Remark:        e.Remark,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out, nil
}

// ListAlerts devuelve los materiales cuyo stock agregado está bajo su mínimo,
// con el faltante calculado. Es una instantánea de una sola consulta.
func (uc *UseCase) ListAlerts(ctx context.Context) ([]dto.AlertResponse, error) {
	rows, err := uc.stockRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AlertResponse{
			MaterialID:   r.MaterialID,
			MaterialCode: r.MaterialCode,
			MaterialName: r.MaterialName,
			CurrentStock: r.CurrentStock,
			MinStock:     r.MinStock,
			Shortage:     r.MinStock.Sub(r.CurrentStock),
		})
	}
	return out, nil
}
