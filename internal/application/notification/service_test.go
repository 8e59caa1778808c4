package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/notification"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotificationRepo struct {
	mu           sync.Mutex
	nextID       int64
	items        map[int64]*entity.Notification
	countQueries int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, items: map[int64]*entity.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64, isRead *bool, _ int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.items {
		if n.UserID != userID {
			continue
		}
		if isRead != nil && n.IsRead != *isRead {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countQueries++
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return true, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// fakeCache registra las operaciones para verificar la política cache-aside.
type fakeCache struct {
	mu          sync.Mutex
	values      map[int64]int64
	failing     bool
	sets        int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[int64]int64{}}
}

func (c *fakeCache) Get(_ context.Context, userID int64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return 0, false, errors.New("redis caído")
	}
	v, ok := c.values[userID]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, userID, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("redis caído")
	}
	c.values[userID] = count
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	if c.failing {
		return errors.New("redis caído")
	}
	delete(c.values, userID)
	return nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if filter.Role == "" || string(u.Role) == filter.Role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(context.Context, *entity.User) error            { return nil }
func (r *fakeUserRepo) Update(context.Context, *entity.User) error            { return nil }
func (r *fakeUserRepo) UpdatePassword(context.Context, int64, string) error   { return nil }
func (r *fakeUserRepo) UpdateLastLogin(context.Context, int64) error          { return nil }
func (r *fakeUserRepo) Delete(context.Context, int64) error                   { return nil }
func (r *fakeUserRepo) GetByID(context.Context, int64) (*entity.User, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeUserRepo) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, domain.ErrNotFound
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = int64(9)

func buildService(cache notification.UnreadCache, users ...*entity.User) (*notification.Service, *fakeNotificationRepo) {
	repo := newFakeNotificationRepo()
	return notification.NewService(repo, &fakeUserRepo{users: users}, cache, zerolog.Nop()), repo
}

func seedNotification(t *testing.T, svc *notification.Service, userID int64) *dto.NotificationResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		UserID: userID,
		Title:  "aviso de prueba",
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// UnreadCount — política cache-aside
// ──────────────────────────────────────────────────────────────────────────────

func TestUnreadCount_MissPueblaElCache(t *testing.T) {
	cache := newFakeCache()
	svc, repo := buildService(cache)
	seedNotification(t, svc, testUserID)
	seedNotification(t, svc, testUserID)

	resp, err := svc.UnreadCount(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
	assert.Equal(t, 1, repo.countQueries, "el miss consulta SQL una vez")
	assert.Equal(t, int64(2), cache.values[testUserID], "el miss repuebla el cache")

	// Segunda consulta: hit, sin tocar SQL.
	resp, err = svc.UnreadCount(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
	assert.Equal(t, 1, repo.countQueries, "el hit no vuelve a consultar SQL")
}

func TestUnreadCount_CacheCaidoDegradaASQL(t *testing.T) {
	cache := newFakeCache()
	cache.failing = true
	svc, _ := buildService(cache)
	seedNotification(t, svc, testUserID)

	resp, err := svc.UnreadCount(context.Background(), testUserID)
	require.NoError(t, err, "un cache caído nunca hace fallar la consulta")
	assert.Equal(t, int64(1), resp.Count)
}

func TestUnreadCount_SinCacheFuncionaDirecto(t *testing.T) {
	svc, _ := buildService(nil)
	seedNotification(t, svc, testUserID)

	resp, err := svc.UnreadCount(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invalidación en cada mutación
// ──────────────────────────────────────────────────────────────────────────────

func TestMutaciones_InvalidanElContador(t *testing.T) {
	cache := newFakeCache()
	svc, _ := buildService(cache)
	n := seedNotification(t, svc, testUserID)

	before := cache.invalidates
	require.NoError(t, svc.MarkRead(context.Background(), n.ID, testUserID))
	assert.Greater(t, cache.invalidates, before, "marcar leída invalida el contador")

	n2 := seedNotification(t, svc, testUserID)
	before = cache.invalidates
	require.NoError(t, svc.Delete(context.Background(), n2.ID, testUserID))
	assert.Greater(t, cache.invalidates, before, "borrar invalida el contador")

	seedNotification(t, svc, testUserID)
	before = cache.invalidates
	require.NoError(t, svc.MarkAllRead(context.Background(), testUserID))
	assert.Greater(t, cache.invalidates, before, "marcar todas invalida el contador")
}

func TestMarkRead_AjenaONoExistente(t *testing.T) {
	svc, _ := buildService(nil)
	n := seedNotification(t, svc, testUserID)

	err := svc.MarkRead(context.Background(), n.ID, testUserID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una notificación ajena se trata como inexistente")

	err = svc.MarkRead(context.Background(), 999, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Avisos generados por otros módulos
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifyLowStock_AvisaAResponsables(t *testing.T) {
	manager := &entity.User{ID: 1, Username: "jefa", Role: entity.RoleDeptManager}
	admin := &entity.User{ID: 2, Username: "root", Role: entity.RoleAdmin}
	worker := &entity.User{ID: 3, Username: "op", Role: entity.RoleWorker}
	svc, repo := buildService(nil, manager, admin, worker)

	material := &entity.Material{
		ID:       5,
		Code:     "AL-6061-T6",
		Name:     "Plancha aluminio",
		Unit:     "kg",
		MinStock: decimal.NewFromInt(100),
	}
	svc.NotifyLowStock(context.Background(), material, decimal.NewFromInt(40))

	forManager, _ := repo.ListByUser(context.Background(), manager.ID, nil, 0)
	forAdmin, _ := repo.ListByUser(context.Background(), admin.ID, nil, 0)
	forWorker, _ := repo.ListByUser(context.Background(), worker.ID, nil, 0)

	assert.Len(t, forManager, 1)
	assert.Len(t, forAdmin, 1)
	assert.Empty(t, forWorker, "los operarios no reciben alertas de stock")
	assert.Equal(t, entity.NotificationCategoryInventory, forManager[0].Category)
	assert.Equal(t, entity.NotificationTypeWarning, forManager[0].Type)
}

func TestNotifyTaskDelayed_AvisaAlResponsable(t *testing.T) {
	svc, repo := buildService(nil)
	managerID := int64(4)
	svc.NotifyTaskDelayed(context.Background(), &entity.Task{
		ID:          10,
		TaskNo:      "T-010",
		Name:        "Montaje interior",
		Status:      entity.TaskStatusDelayed,
		ManagerID:   &managerID,
		DelayReason: "material pendiente",
	})

	items, _ := repo.ListByUser(context.Background(), managerID, nil, 0)
	require.Len(t, items, 1)
	assert.Equal(t, entity.NotificationCategoryTask, items[0].Category)
	assert.Contains(t, items[0].Content, "material pendiente")
}

func TestNotifyTaskDelayed_SinResponsableNoEmite(t *testing.T) {
	svc, repo := buildService(nil)
	svc.NotifyTaskDelayed(context.Background(), &entity.Task{ID: 10, TaskNo: "T-010", Name: "x"})

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Empty(t, repo.items)
}
