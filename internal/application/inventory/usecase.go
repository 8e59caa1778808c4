package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// UseCase aplica movimientos de inventario de forma transaccional
// (in, out, adjust, transfer) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada movimiento aceptado deja exactamente un asiento en el libro (dos en traslados)
// con el saldo antes y después de la mutación.
type UseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	ledgerRepo   repository.LedgerRepository
	notifier     LowStockNotifier
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso. notifier puede ser nil si no hay avisos configurados.
func NewUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	notifier LowStockNotifier,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		ledgerRepo:   ledgerRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Operator identifica al usuario que ejecuta el movimiento; se copia al asiento.
type Operator struct {
	ID   int64
	Name string
}

// ApplyMovement inicia una transacción, bloquea la fila de saldo (SELECT FOR UPDATE),
// aplica la lógica según tipo (in/out/adjust/transfer) y hace Commit o Rollback.
// Una salida que dejaría el saldo en negativo se rechaza con ErrInsufficientStock
// sin escribir nada.
func (uc *UseCase) ApplyMovement(ctx context.Context, op Operator, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	// Validar tipo y campos
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.MaterialID == 0 || in.Warehouse == "" {
			return nil, domain.ErrValidation
		}
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrValidation
		}
	case entity.MovementTypeAdjust:
		if in.MaterialID == 0 || in.Warehouse == "" || in.Quantity.IsZero() {
			return nil, domain.ErrValidation
		}
	case entity.MovementTypeTransfer:
		if in.MaterialID == 0 || in.Warehouse == "" || in.ToWarehouse == "" {
			return nil, domain.ErrValidation
		}
		if in.Warehouse == in.ToWarehouse || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrValidation
		}
	default:
		return nil, domain.ErrValidation
	}

	material, err := uc.materialRepo.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	var balance decimal.Decimal

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		var txErr error
		switch in.Type {
		case entity.MovementTypeIn:
			balance, txErr = uc.doIn(ctx, stockRepo, ledgerRepo, op, in, now, txID)
		case entity.MovementTypeOut:
			balance, txErr = uc.doOut(ctx, stockRepo, ledgerRepo, op, in, now, txID)
		case entity.MovementTypeAdjust:
			balance, txErr = uc.doAdjust(ctx, stockRepo, ledgerRepo, op, in, now, txID)
		case entity.MovementTypeTransfer:
			balance, txErr = uc.doTransfer(ctx, stockRepo, ledgerRepo, op, in, now, txID)
		}
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// Aviso de stock bajo tras una salida confirmada; nunca afecta al movimiento ya hecho.
	if in.Type == entity.MovementTypeOut || (in.Type == entity.MovementTypeAdjust && in.Quantity.IsNegative()) {
		uc.checkLowStock(material)
	}

	return &dto.TransactionResponse{
		TransactionID: txID,
		MaterialID:    in.MaterialID,
		Warehouse:     in.Warehouse,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Balance:       balance,
	}, nil
}

// doIn bloquea la fila de saldo, suma la cantidad y deja el asiento con before/after.
func (uc *UseCase) doIn(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	op Operator, in dto.TransactionRequest,
	now time.Time, txID string,
) (decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(ctx, in.MaterialID, in.Warehouse)
	if err != nil {
		return decimal.Zero, err
	}
	before := stock.Quantity
	stock.Quantity = before.Add(in.Quantity)
	stock.UpdatedAt = now
	if stock.ID == 0 {
		stock.QCStatus = entity.QCStatusPending
		stock.CreatedAt = now
	}
	if in.BatchNo != "" {
		stock.BatchNo = in.BatchNo
	}
	if in.Location != "" {
		stock.Location = in.Location
	}
	if in.RelatedOrder != nil {
		stock.ProcurementOrderID = in.RelatedOrder
	}
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return decimal.Zero, err
	}
	entry := &entity.LedgerEntry{
		TransactionID:  txID,
		MaterialID:     in.MaterialID,
		StockID:        stock.ID,
		Type:           entity.MovementTypeIn,
		Quantity:       in.Quantity,
		BeforeQty:      before,
		AfterQty:       stock.Quantity,
		RelatedTaskID:  in.RelatedTaskID,
		RelatedOrderID: in.RelatedOrder,
		OperatorID:     op.ID,
		OperatorName:   op.Name,
		Remark:         in.Remark,
		CreatedAt:      now,
	}
	return stock.Quantity, ledgerRepo.Create(ctx, entry)
}

// doOut bloquea la fila, verifica saldo >= cantidad solicitada, resta y deja el asiento.
// Un material sin fila de saldo equivale a saldo cero y falla aquí.
func (uc *UseCase) doOut(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	op Operator, in dto.TransactionRequest,
	now time.Time, txID string,
) (decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(ctx, in.MaterialID, in.Warehouse)
	if err != nil {
		return decimal.Zero, err
	}
	if stock.Quantity.LessThan(in.Quantity) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	before := stock.Quantity
	stock.Quantity = before.Sub(in.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return decimal.Zero, err
	}
	entry := &entity.LedgerEntry{
		TransactionID:  txID,
		MaterialID:     in.MaterialID,
		StockID:        stock.ID,
		Type:           entity.MovementTypeOut,
		Quantity:       in.Quantity.Neg(),
		BeforeQty:      before,
		AfterQty:       stock.Quantity,
		RelatedTaskID:  in.RelatedTaskID,
		RelatedOrderID: in.RelatedOrder,
		OperatorID:     op.ID,
		OperatorName:   op.Name,
		Remark:         in.Remark,
		CreatedAt:      now,
	}
	return stock.Quantity, ledgerRepo.Create(ctx, entry)
}

// doAdjust: cantidad positiva suma como entrada, negativa resta como salida
// (con el mismo chequeo de saldo insuficiente). El asiento conserva el tipo adjust.
func (uc *UseCase) doAdjust(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	op Operator, in dto.TransactionRequest,
	now time.Time, txID string,
) (decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(ctx, in.MaterialID, in.Warehouse)
	if err != nil {
		return decimal.Zero, err
	}
	before := stock.Quantity
	after := before.Add(in.Quantity)
	if after.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	stock.Quantity = after
	stock.UpdatedAt = now
	if stock.ID == 0 {
		stock.QCStatus = entity.QCStatusPending
		stock.CreatedAt = now
	}
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return decimal.Zero, err
	}
	entry := &entity.LedgerEntry{
		TransactionID: txID,
		MaterialID:    in.MaterialID,
		StockID:       stock.ID,
		Type:          entity.MovementTypeAdjust,
		Quantity:      in.Quantity,
		BeforeQty:     before,
		AfterQty:      after,
		RelatedTaskID: in.RelatedTaskID,
		OperatorID:    op.ID,
		OperatorName:  op.Name,
		Remark:        in.Remark,
		CreatedAt:     now,
	}
	return after, ledgerRepo.Create(ctx, entry)
}

// doTransfer resta en el almacén origen y suma en el destino dentro de la misma
// transacción; deja dos asientos que comparten TransactionID.
func (uc *UseCase) doTransfer(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	op Operator, in dto.TransactionRequest,
	now time.Time, txID string,
) (decimal.Decimal, error) {
	// Ambas filas se bloquean en orden canónico por nombre de almacén; dos
	// traslados opuestos sobre el mismo par nunca se esperan en cruz.
	firstWh, secondWh := in.Warehouse, in.ToWarehouse
	if secondWh < firstWh {
		firstWh, secondWh = secondWh, firstWh
	}
	first, err := stockRepo.GetForUpdate(ctx, in.MaterialID, firstWh)
	if err != nil {
		return decimal.Zero, err
	}
	second, err := stockRepo.GetForUpdate(ctx, in.MaterialID, secondWh)
	if err != nil {
		return decimal.Zero, err
	}
	origin, dest := first, second
	if in.Warehouse != firstWh {
		origin, dest = second, first
	}
	if origin.Quantity.LessThan(in.Quantity) {
		return decimal.Zero, domain.ErrInsufficientStock
	}

	originBefore := origin.Quantity
	destBefore := dest.Quantity
	origin.Quantity = originBefore.Sub(in.Quantity)
	dest.Quantity = destBefore.Add(in.Quantity)
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if dest.ID == 0 {
		dest.QCStatus = origin.QCStatus
		dest.BatchNo = origin.BatchNo
		dest.CreatedAt = now
	}
	if err := stockRepo.Upsert(ctx, origin); err != nil {
		return decimal.Zero, err
	}
	if err := stockRepo.Upsert(ctx, dest); err != nil {
		return decimal.Zero, err
	}

	// Asiento de salida en origen
	outEntry := &entity.LedgerEntry{
		TransactionID: txID,
		MaterialID:    in.MaterialID,
		StockID:       origin.ID,
		Type:          entity.MovementTypeTransfer,
		Quantity:      in.Quantity.Neg(),
		BeforeQty:     originBefore,
		AfterQty:      origin.Quantity,
		RelatedTaskID: in.RelatedTaskID,
		OperatorID:    op.ID,
		OperatorName:  op.Name,
		Remark:        in.Remark,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Create(ctx, outEntry); err != nil {
		return decimal.Zero, err
	}
	// Asiento de entrada en destino
	inEntry := &entity.LedgerEntry{
		TransactionID: txID,
		MaterialID:    in.MaterialID,
		StockID:       dest.ID,
		Type:          entity.MovementTypeTransfer,
		Quantity:      in.Quantity,
		BeforeQty:     destBefore,
		AfterQty:      dest.Quantity,
		RelatedTaskID: in.RelatedTaskID,
		OperatorID:    op.ID,
		OperatorName:  op.Name,
		Remark:        in.Remark,
		CreatedAt:     now,
	}
	return origin.Quantity, ledgerRepo.Create(ctx, inEntry)
}

// checkLowStock consulta el stock agregado tras la salida y dispara el aviso si
// quedó bajo mínimo. Corre en segundo plano con su propio contexto.
func (uc *UseCase) checkLowStock(material *entity.Material) {
	if uc.notifier == nil || material.MinStock.IsZero() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		total, err := uc.stockRepo.TotalByMaterial(ctx, material.ID)
		if err != nil {
			uc.log.Warn().Err(err).Int64("material_id", material.ID).Msg("no se pudo evaluar stock mínimo")
			return
		}
		if total.LessThan(material.MinStock) {
			uc.notifier.NotifyLowStock(ctx, material, total)
		}
	}()
}
