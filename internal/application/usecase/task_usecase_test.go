package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fake de tareas reproduce el contrato de versión del
// puerto: compare-and-increment, ErrVersionConflict en versión obsoleta.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]entity.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: map[int64]entity.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTaskRepo) List(context.Context, repository.TaskFilter) ([]*entity.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entity.Task, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion != 0 && stored.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	task.Version = stored.Version + 1
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) StatsByProject(context.Context, int64) (repository.TaskProjectStats, error) {
	return repository.TaskProjectStats{}, nil
}

type fakeProjectRepo struct {
	projects map[int64]*entity.Project
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*entity.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProjectRepo) Create(context.Context, *entity.Project) error { return nil }
func (r *fakeProjectRepo) Update(context.Context, *entity.Project) error { return nil }
func (r *fakeProjectRepo) Delete(context.Context, int64) error           { return nil }
func (r *fakeProjectRepo) GetByProjectNo(context.Context, string) (*entity.Project, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeProjectRepo) List(context.Context, repository.ProjectFilter) ([]*entity.Project, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testProjectID = int64(1)

func buildTaskUseCase(t *testing.T) (*usecase.TaskUseCase, *fakeTaskRepo) {
	t.Helper()
	repo := newFakeTaskRepo()
	projects := &fakeProjectRepo{projects: map[int64]*entity.Project{
		testProjectID: {ID: testProjectID, ProjectNo: "YT-2026-001", YachtName: "Azimut 68"},
	}}
	return usecase.NewTaskUseCase(repo, projects, nil, zerolog.Nop()), repo
}

func createTask(t *testing.T, uc *usecase.TaskUseCase) *dto.TaskResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreateTaskRequest{
		ProjectID: testProjectID,
		TaskNo:    "T-001",
		Name:      "Soldadura casco sección 3",
		TaskType:  entity.TaskTypeHullConstruction,
	})
	require.NoError(t, err)
	return resp
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestTaskCreate_VersionInicialUno(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	resp := createTask(t, uc)

	assert.Equal(t, 1, resp.Version, "toda tarea nace con versión 1")
	assert.Equal(t, entity.TaskStatusNotStarted, resp.Status)
	assert.Equal(t, entity.TaskPriorityMedium, resp.Priority)
}

func TestTaskCreate_ProyectoInexistente(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	_, err := uc.Create(context.Background(), dto.CreateTaskRequest{
		ProjectID: 99,
		TaskNo:    "T-001",
		Name:      "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — bloqueo optimista
// ──────────────────────────────────────────────────────────────────────────────

func TestTaskUpdate_VersionCorrectaIncrementa(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	resp, err := uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version: task.Version,
		Name:    strPtr("Soldadura casco sección 3 y 4"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Version, "cada escritura aceptada incrementa la versión en 1")
	assert.Equal(t, "Soldadura casco sección 3 y 4", resp.Name)
}

func TestTaskUpdate_VersionObsoletaRechazada(t *testing.T) {
	uc, repo := buildTaskUseCase(t)
	task := createTask(t, uc)

	// Primera escritura gana y bumpea la versión a 2.
	_, err := uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version:  task.Version,
		Priority: strPtr(entity.TaskPriorityHigh),
	})
	require.NoError(t, err)

	// La segunda llega con la versión leída antes del primer write.
	_, err = uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version: task.Version,
		Name:    strPtr("edición perdida"),
	})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPriorityHigh, stored.Priority, "la fila conserva la primera escritura")
	assert.NotEqual(t, "edición perdida", stored.Name)
	assert.Equal(t, 2, stored.Version)
}

func TestTaskUpdate_VersionCeroFuerzaEscritura(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	_, err := uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version: task.Version,
		Name:    strPtr("primer cambio"),
	})
	require.NoError(t, err)

	resp, err := uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version: 0,
		Name:    strPtr("escritura forzada"),
	})
	require.NoError(t, err, "versión 0 omite el chequeo optimista")
	assert.Equal(t, "escritura forzada", resp.Name)
	assert.Equal(t, 3, resp.Version, "la escritura forzada también incrementa la versión")
}

func TestTaskUpdate_ProgresoFueraDeRango(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	_, err := uc.Update(context.Background(), task.ID, dto.UpdateTaskRequest{
		Version:         task.Version,
		ProgressPercent: intPtr(101),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReportWork — transiciones de estado implícitas
// ──────────────────────────────────────────────────────────────────────────────

func TestReportWork_PrimerAvanceIniciaLaTarea(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	resp, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{
		WorkHours:       8,
		ProgressPercent: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TaskStatusInProgress, resp.Status)
	assert.NotNil(t, resp.ActualStart, "el primer avance fija actual_start")
	assert.Equal(t, 8, resp.ActualWorkHours)
	assert.Equal(t, 20, resp.ProgressPercent)
	assert.Equal(t, 2, resp.Version)
}

func TestReportWork_CienPorCientoCompletaLaTarea(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	_, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{WorkHours: 8, ProgressPercent: 60})
	require.NoError(t, err)

	resp, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{WorkHours: 4, ProgressPercent: 100})
	require.NoError(t, err)

	assert.Equal(t, entity.TaskStatusCompleted, resp.Status)
	assert.NotNil(t, resp.ActualEnd, "completar fija actual_end")
	assert.Equal(t, 12, resp.ActualWorkHours, "las horas se acumulan entre reportes")
}

func TestReportWork_ProgresoNuncaRetrocede(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	_, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{ProgressPercent: 50})
	require.NoError(t, err)

	resp, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{WorkHours: 2, ProgressPercent: 30})
	require.NoError(t, err)

	assert.Equal(t, 50, resp.ProgressPercent, "un reporte con menos avance no reduce el progreso")
	assert.Equal(t, 2, resp.ActualWorkHours, "las horas sí se suman")
}

func TestReportWork_ValoresInvalidos(t *testing.T) {
	uc, _ := buildTaskUseCase(t)
	task := createTask(t, uc)

	_, err := uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{WorkHours: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.ReportWork(context.Background(), task.ID, dto.ReportWorkRequest{ProgressPercent: 120})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
