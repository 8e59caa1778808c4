package excel

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
)

// Nombres de hoja reconocidos. Las hojas se procesan en este orden para que las
// referencias (departamento de un usuario, proyecto de una tarea) ya existan.
var sheetOrder = []string{"Departments", "Teams", "Users", "Projects", "Tasks", "Materials", "Procurement"}

// Importer carga datos maestros desde un libro Excel (.xlsx). Cada hoja
// reconocida se procesa fila a fila; los errores de una fila la saltan sin
// abortar el resto de la importación.
type Importer struct {
	deptRepo        repository.DepartmentRepository
	teamRepo        repository.TeamRepository
	userRepo        repository.UserRepository
	projectRepo     repository.ProjectRepository
	taskRepo        repository.TaskRepository
	materialRepo    repository.MaterialRepository
	procurementRepo repository.ProcurementRepository
	log             zerolog.Logger
}

// NewImporter construye el importador con los puertos de persistencia.
func NewImporter(
	deptRepo repository.DepartmentRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	materialRepo repository.MaterialRepository,
	procurementRepo repository.ProcurementRepository,
	log zerolog.Logger,
) *Importer {
	return &Importer{
		deptRepo:        deptRepo,
		teamRepo:        teamRepo,
		userRepo:        userRepo,
		projectRepo:     projectRepo,
		taskRepo:        taskRepo,
		materialRepo:    materialRepo,
		procurementRepo: procurementRepo,
		log:             log,
	}
}

// Import lee el libro completo y procesa las hojas reconocidas. La primera fila
// de cada hoja es la cabecera; las columnas se resuelven por nombre, no por posición.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: no es un libro Excel válido", domain.ErrValidation)
	}
	defer f.Close()

	resp := &dto.ImportResponse{}
	for _, sheet := range sheetOrder {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
		}
		result := imp.importSheet(ctx, sheet, rows)
		resp.TotalImported += result.Imported
		resp.TotalSkipped += result.Skipped
		resp.Sheets = append(resp.Sheets, result)
	}
	if len(resp.Sheets) == 0 {
		return nil, fmt.Errorf("%w: el libro no contiene hojas reconocidas", domain.ErrValidation)
	}
	return resp, nil
}

func (imp *Importer) importSheet(ctx context.Context, sheet string, rows [][]string) dto.SheetResult {
	result := dto.SheetResult{Sheet: sheet}
	if len(rows) < 2 {
		return result
	}
	cols := headerIndex(rows[0])
	for i, row := range rows[1:] {
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		var err error
		switch sheet {
		case "Departments":
			err = imp.importDepartment(ctx, get)
		case "Teams":
			err = imp.importTeam(ctx, get)
		case "Users":
			err = imp.importUser(ctx, get)
		case "Projects":
			err = imp.importProject(ctx, get)
		case "Tasks":
			err = imp.importTask(ctx, get)
		case "Materials":
			err = imp.importMaterial(ctx, get)
		case "Procurement":
			err = imp.importProcurement(ctx, get)
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", i+2, err))
			continue
		}
		result.Imported++
	}
	imp.log.Info().Str("sheet", sheet).Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("hoja importada")
	return result
}

func (imp *Importer) importDepartment(ctx context.Context, get func(string) string) error {
	name, code := get("name"), get("code")
	if name == "" || code == "" {
		return fmt.Errorf("name y code son obligatorios")
	}
	return imp.deptRepo.Create(ctx, &entity.Department{
		Name:        name,
		Code:        code,
		Description: get("description"),
	})
}

func (imp *Importer) importTeam(ctx context.Context, get func(string) string) error {
	name, code := get("name"), get("code")
	if name == "" || code == "" {
		return fmt.Errorf("name y code son obligatorios")
	}
	team := &entity.Team{
		Name:        name,
		Code:        code,
		Specialty:   get("specialty"),
		Description: get("description"),
	}
	if deptCode := get("dept_code"); deptCode != "" {
		dept, err := imp.deptRepo.GetByCode(ctx, deptCode)
		if err != nil {
			return fmt.Errorf("departamento %q no encontrado", deptCode)
		}
		team.DeptID = &dept.ID
	}
	return imp.teamRepo.Create(ctx, team)
}

func (imp *Importer) importUser(ctx context.Context, get func(string) string) error {
	username, password := get("username"), get("password")
	if username == "" || password == "" {
		return fmt.Errorf("username y password son obligatorios")
	}
	role := entity.Role(get("role"))
	if role == "" {
		role = entity.RoleWorker
	}
	if !role.IsValid() {
		return fmt.Errorf("rol %q inválido", string(role))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		RealName:     get("real_name"),
		Phone:        get("phone"),
		Email:        get("email"),
		IsActive:     true,
	}
	if deptCode := get("dept_code"); deptCode != "" {
		dept, err := imp.deptRepo.GetByCode(ctx, deptCode)
		if err != nil {
			return fmt.Errorf("departamento %q no encontrado", deptCode)
		}
		user.DeptID = &dept.ID
	}
	if teamCode := get("team_code"); teamCode != "" {
		team, err := imp.teamRepo.GetByCode(ctx, teamCode)
		if err != nil {
			return fmt.Errorf("equipo %q no encontrado", teamCode)
		}
		user.TeamID = &team.ID
	}
	return imp.userRepo.Create(ctx, user)
}

func (imp *Importer) importProject(ctx context.Context, get func(string) string) error {
	projectNo, yachtName := get("project_no"), get("yacht_name")
	if projectNo == "" || yachtName == "" {
		return fmt.Errorf("project_no y yacht_name son obligatorios")
	}
	status := get("status")
	if status == "" {
		status = entity.ProjectStatusPlanning
	}
	budget, err := parseDecimal(get("total_budget"))
	if err != nil {
		return fmt.Errorf("total_budget inválido: %v", err)
	}
	return imp.projectRepo.Create(ctx, &entity.Project{
		ProjectNo:   projectNo,
		YachtName:   yachtName,
		YachtModel:  get("yacht_model"),
		ClientName:  get("client_name"),
		Status:      status,
		StartDate:   parseDate(get("start_date")),
		PlannedEnd:  parseDate(get("planned_end")),
		TotalBudget: budget,
		Description: get("description"),
	})
}

func (imp *Importer) importTask(ctx context.Context, get func(string) string) error {
	projectNo, taskNo, name := get("project_no"), get("task_no"), get("name")
	if projectNo == "" || taskNo == "" || name == "" {
		return fmt.Errorf("project_no, task_no y name son obligatorios")
	}
	project, err := imp.projectRepo.GetByProjectNo(ctx, projectNo)
	if err != nil {
		return fmt.Errorf("proyecto %q no encontrado", projectNo)
	}
	status := get("status")
	if status == "" {
		status = entity.TaskStatusNotStarted
	}
	priority := get("priority")
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}
	hours, _ := strconv.Atoi(get("planned_work_hours"))
	return imp.taskRepo.Create(ctx, &entity.Task{
		ProjectID:        project.ID,
		TaskNo:           taskNo,
		Name:             name,
		TaskType:         get("task_type"),
		Status:           status,
		Priority:         priority,
		PlanStart:        parseDate(get("plan_start")),
		PlanEnd:          parseDate(get("plan_end")),
		PlannedWorkHours: hours,
		Version:          1,
	})
}

func (imp *Importer) importMaterial(ctx context.Context, get func(string) string) error {
	code, name, unit := get("code"), get("name"), get("unit")
	if code == "" || name == "" || unit == "" {
		return fmt.Errorf("code, name y unit son obligatorios")
	}
	minStock, err := parseDecimal(get("min_stock"))
	if err != nil {
		return fmt.Errorf("min_stock inválido: %v", err)
	}
	maxStock, err := parseDecimal(get("max_stock"))
	if err != nil {
		return fmt.Errorf("max_stock inválido: %v", err)
	}
	safetyStock, err := parseDecimal(get("safety_stock"))
	if err != nil {
		return fmt.Errorf("safety_stock inválido: %v", err)
	}
	unitCost, err := parseDecimal(get("unit_cost"))
	if err != nil {
		return fmt.Errorf("unit_cost inválido: %v", err)
	}
	return imp.materialRepo.Create(ctx, &entity.Material{
		Code:          code,
		Name:          name,
		Brand:         get("brand"),
		Model:         get("model"),
		Specification: get("specification"),
		Unit:          unit,
		Supplier:      get("supplier"),
		MinStock:      minStock,
		MaxStock:      maxStock,
		SafetyStock:   safetyStock,
		UnitCost:      unitCost,
		Status:        entity.MaterialStatusActive,
	})
}

func (imp *Importer) importProcurement(ctx context.Context, get func(string) string) error {
	orderNo := get("order_no")
	if orderNo == "" {
		return fmt.Errorf("order_no es obligatorio")
	}
	quantity, err := parseDecimal(get("quantity"))
	if err != nil || !quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("quantity inválida")
	}
	unitPrice, err := parseDecimal(get("unit_price"))
	if err != nil {
		return fmt.Errorf("unit_price inválido: %v", err)
	}
	order := &entity.ProcurementOrder{
		OrderNo:      orderNo,
		MaterialName: get("material_name"),
		Quantity:     quantity,
		Unit:         get("unit"),
		UnitPrice:    unitPrice,
		TotalPrice:   quantity.Mul(unitPrice),
		Supplier:     get("supplier"),
		OrderDate:    parseDate(get("order_date")),
		DeliveryDate: parseDate(get("delivery_date")),
		Status:       entity.ProcurementStatusDraft,
	}
	if materialCode := get("material_code"); materialCode != "" {
		material, err := imp.materialRepo.GetByCode(ctx, materialCode)
		if err != nil {
			return fmt.Errorf("material %q no encontrado", materialCode)
		}
		order.MaterialID = &material.ID
		if order.MaterialName == "" {
			order.MaterialName = material.Name
		}
		if order.Unit == "" {
			order.Unit = material.Unit
		}
	}
	if order.MaterialName == "" {
		return fmt.Errorf("material_name o material_code es obligatorio")
	}
	return imp.procurementRepo.Create(ctx, order)
}

// headerIndex mapea nombre de columna (en minúsculas) a su índice.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name != "" {
			cols[name] = i
		}
	}
	return cols
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

// parseDate acepta 2006-01-02 y el formato de celda de fecha de Excel (01-02-06).
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "01-02-06", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
