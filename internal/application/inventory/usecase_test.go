package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/inventory"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner trabaja sobre una
// copia del estado y solo la consolida si el callback no devuelve error, igual
// que un Commit/Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct {
	materialID int64
	warehouse  string
}

type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	stocks map[stockKey]entity.StockRecord
	ledger []entity.LedgerEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, stocks: map[stockKey]entity.StockRecord{}}
}

func (s *fakeStore) seed(materialID int64, warehouse string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[stockKey{materialID, warehouse}] = entity.StockRecord{
		ID:         s.nextID,
		MaterialID: materialID,
		Warehouse:  warehouse,
		Quantity:   qty,
		QCStatus:   entity.QCStatusPass,
	}
	s.nextID++
}

func (s *fakeStore) snapshot() (map[stockKey]entity.StockRecord, []entity.LedgerEntry, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stocks := make(map[stockKey]entity.StockRecord, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	return stocks, append([]entity.LedgerEntry(nil), s.ledger...), s.nextID
}

func (s *fakeStore) restore(stocks map[stockKey]entity.StockRecord, ledger []entity.LedgerEntry, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = stocks
	s.ledger = ledger
	s.nextID = nextID
}

// fakeStockRepo opera directamente sobre el store compartido.
type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) GetForUpdate(_ context.Context, materialID int64, warehouse string) (*entity.StockRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if rec, ok := r.store.stocks[stockKey{materialID, warehouse}]; ok {
		cp := rec
		return &cp, nil
	}
	return &entity.StockRecord{MaterialID: materialID, Warehouse: warehouse, Quantity: decimal.Zero, QCStatus: entity.QCStatusPending}, nil
}

func (r *fakeStockRepo) Upsert(_ context.Context, record *entity.StockRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if record.ID == 0 {
		record.ID = r.store.nextID
		r.store.nextID++
	}
	r.store.stocks[stockKey{record.MaterialID, record.Warehouse}] = *record
	return nil
}

func (r *fakeStockRepo) List(context.Context, repository.StockFilter) ([]*entity.StockRecord, error) {
	return nil, nil
}

func (r *fakeStockRepo) TotalByMaterial(_ context.Context, materialID int64) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, rec := range r.store.stocks {
		if rec.MaterialID == materialID {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

func (r *fakeStockRepo) LowStock(context.Context) ([]repository.LowStockRow, error) {
	return nil, nil
}

type fakeLedgerRepo struct{ store *fakeStore }

func (r *fakeLedgerRepo) Create(_ context.Context, entry *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry.ID = r.store.nextID
	r.store.nextID++
	r.store.ledger = append(r.store.ledger, *entry)
	return nil
}

func (r *fakeLedgerRepo) List(context.Context, repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

// fakeTxRunner consolida el estado solo si fn no devuelve error.
type fakeTxRunner struct{ store *fakeStore }

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.LedgerRepository) error) error {
	stocks, ledger, nextID := tr.store.snapshot()
	err := fn(&fakeStockRepo{store: tr.store}, &fakeLedgerRepo{store: tr.store})
	if err != nil {
		tr.store.restore(stocks, ledger, nextID)
	}
	return err
}

type fakeMaterialRepo struct {
	materials map[int64]*entity.Material
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id int64) (*entity.Material, error) {
	if m, ok := r.materials[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMaterialRepo) Create(context.Context, *entity.Material) error    { return nil }
func (r *fakeMaterialRepo) Update(context.Context, *entity.Material) error    { return nil }
func (r *fakeMaterialRepo) Delete(context.Context, int64) error               { return nil }
func (r *fakeMaterialRepo) GetByCode(context.Context, string) (*entity.Material, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeMaterialRepo) List(context.Context, repository.MaterialFilter) ([]*entity.Material, error) {
	return nil, nil
}
func (r *fakeMaterialRepo) ListCategories(context.Context) ([]*entity.MaterialCategory, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testMaterialID = int64(7)
	testWarehouse  = "almacen-central"
	testWarehouse2 = "taller-soldadura"
)

var testOperator = inventory.Operator{ID: 3, Name: "msoto"}

func buildUseCase(store *fakeStore) *inventory.UseCase {
	materials := &fakeMaterialRepo{materials: map[int64]*entity.Material{
		testMaterialID: {
			ID:   testMaterialID,
			Code: "AL-6061-T6",
			Name: "Plancha aluminio 6061-T6",
			Unit: "kg",
		},
	}}
	return inventory.NewUseCase(
		&fakeTxRunner{store: store},
		materials,
		&fakeStockRepo{store: store},
		&fakeLedgerRepo{store: store},
		nil,
		zerolog.Nop(),
	)
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaCreaSaldoYAsiento(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	resp, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeIn,
		Quantity:   qty("120.5"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.TransactionID, "cada movimiento recibe un transaction_id")
	assert.True(t, resp.Balance.Equal(qty("120.5")), "el saldo devuelto es el posterior al movimiento")

	_, ledger, _ := store.snapshot()
	require.Len(t, ledger, 1)
	entry := ledger[0]
	assert.Equal(t, entity.MovementTypeIn, entry.Type)
	assert.True(t, entry.BeforeQty.Equal(decimal.Zero))
	assert.True(t, entry.AfterQty.Equal(qty("120.5")))
	assert.Equal(t, testOperator.ID, entry.OperatorID)
	assert.Equal(t, testOperator.Name, entry.OperatorName)
}

func TestApplyMovement_SalidaDescuentaYRegistraNegativo(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("100"))
	uc := buildUseCase(store)

	resp, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeOut,
		Quantity:   qty("30"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(qty("70")))

	_, ledger, _ := store.snapshot()
	require.Len(t, ledger, 1)
	assert.True(t, ledger[0].Quantity.Equal(qty("-30")),
		"las salidas se asientan con cantidad negativa")
	assert.True(t, ledger[0].BeforeQty.Equal(qty("100")))
	assert.True(t, ledger[0].AfterQty.Equal(qty("70")))
}

func TestApplyMovement_SalidaSinSaldoNoDejaAsiento(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("10"))
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeOut,
		Quantity:   qty("10.01"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stocks, ledger, _ := store.snapshot()
	assert.Empty(t, ledger, "un movimiento rechazado no escribe en el libro")
	assert.True(t, stocks[stockKey{testMaterialID, testWarehouse}].Quantity.Equal(qty("10")),
		"el saldo queda intacto tras el rollback")
}

func TestApplyMovement_SalidaSobreAlmacenInexistenteFalla(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	// Sin fila de saldo el almacén equivale a saldo cero.
	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeOut,
		Quantity:   qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_AjustePositivoYNegativo(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("50"))
	uc := buildUseCase(store)

	resp, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeAdjust,
		Quantity:   qty("5"),
		Remark:     "recuento físico",
	})
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(qty("55")))

	resp, err = uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeAdjust,
		Quantity:   qty("-15"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(qty("40")))

	_, ledger, _ := store.snapshot()
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.MovementTypeAdjust, ledger[0].Type, "el asiento conserva el tipo adjust")
	assert.Equal(t, entity.MovementTypeAdjust, ledger[1].Type)
	assert.True(t, ledger[1].Quantity.Equal(qty("-15")))
}

func TestApplyMovement_AjusteNegativoBajoCeroRechazado(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("3"))
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeAdjust,
		Quantity:   qty("-4"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyMovement_AjusteCeroEsInvalido(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeAdjust,
		Quantity:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_TrasladoDejaDosAsientosConMismoTransactionID(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("80"))
	uc := buildUseCase(store)

	resp, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID:  testMaterialID,
		Warehouse:   testWarehouse,
		ToWarehouse: testWarehouse2,
		Type:        entity.MovementTypeTransfer,
		Quantity:    qty("25"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(qty("55")), "el saldo devuelto es el del almacén origen")

	stocks, ledger, _ := store.snapshot()
	require.Len(t, ledger, 2, "un traslado deja dos asientos")
	assert.Equal(t, ledger[0].TransactionID, ledger[1].TransactionID,
		"ambos asientos comparten transaction_id")
	assert.True(t, ledger[0].Quantity.Equal(qty("-25")))
	assert.True(t, ledger[1].Quantity.Equal(qty("25")))

	assert.True(t, stocks[stockKey{testMaterialID, testWarehouse}].Quantity.Equal(qty("55")))
	assert.True(t, stocks[stockKey{testMaterialID, testWarehouse2}].Quantity.Equal(qty("25")))
}

func TestApplyMovement_TrasladoSinSaldoNoMutaNada(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("5"))
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID:  testMaterialID,
		Warehouse:   testWarehouse,
		ToWarehouse: testWarehouse2,
		Type:        entity.MovementTypeTransfer,
		Quantity:    qty("6"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stocks, ledger, _ := store.snapshot()
	assert.Empty(t, ledger)
	assert.True(t, stocks[stockKey{testMaterialID, testWarehouse}].Quantity.Equal(qty("5")))
	_, exists := stocks[stockKey{testMaterialID, testWarehouse2}]
	assert.False(t, exists, "el almacén destino no se crea si el traslado falla")
}

func TestApplyMovement_TrasladoAlMismoAlmacenEsInvalido(t *testing.T) {
	store := newFakeStore()
	store.seed(testMaterialID, testWarehouse, qty("50"))
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID:  testMaterialID,
		Warehouse:   testWarehouse,
		ToWarehouse: testWarehouse,
		Type:        entity.MovementTypeTransfer,
		Quantity:    qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones generales
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_TipoDesconocidoEsInvalido(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: testMaterialID,
		Warehouse:  testWarehouse,
		Type:       "devolucion",
		Quantity:   qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyMovement_MaterialInexistente(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	_, err := uc.ApplyMovement(context.Background(), testOperator, dto.TransactionRequest{
		MaterialID: 999,
		Warehouse:  testWarehouse,
		Type:       entity.MovementTypeIn,
		Quantity:   qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_EncadenaBeforeAfterEntreMovimientos(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)
	ctx := context.Background()

	steps := []dto.TransactionRequest{
		{MaterialID: testMaterialID, Warehouse: testWarehouse, Type: entity.MovementTypeIn, Quantity: qty("100")},
		{MaterialID: testMaterialID, Warehouse: testWarehouse, Type: entity.MovementTypeOut, Quantity: qty("40")},
		{MaterialID: testMaterialID, Warehouse: testWarehouse, Type: entity.MovementTypeAdjust, Quantity: qty("-10")},
	}
	for _, step := range steps {
		_, err := uc.ApplyMovement(ctx, testOperator, step)
		require.NoError(t, err)
	}

	_, ledger, _ := store.snapshot()
	require.Len(t, ledger, 3)
	for i := 1; i < len(ledger); i++ {
		assert.Truef(t, ledger[i].BeforeQty.Equal(ledger[i-1].AfterQty),
			"el before del asiento %d debe encadenar con el after del anterior", i)
	}
	assert.True(t, ledger[2].AfterQty.Equal(qty("50")))
}
