package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/analytics"
	"github.com/astillero-mes/yacht-mes/internal/application/audit"
	"github.com/astillero-mes/yacht-mes/internal/application/auth"
	"github.com/astillero-mes/yacht-mes/internal/application/inventory"
	"github.com/astillero-mes/yacht-mes/internal/application/notification"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
	"github.com/astillero-mes/yacht-mes/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	UserUC        *usecase.UserUseCase
	OrgUC         *usecase.OrgUseCase
	ProjectUC     *usecase.ProjectUseCase
	TaskUC        *usecase.TaskUseCase
	MaterialUC    *usecase.MaterialUseCase
	InventoryUC   *inventory.UseCase
	ProcurementUC *usecase.ProcurementUseCase
	NotifySvc     *notification.Service
	AuditSvc      *audit.Service
	DashboardUC   *analytics.DashboardUseCase
	Importer      *excel.Importer
	JWTSecret     string
}

// Router registra las rutas de la API bajo /api/v1.
//
// Roles mínimos por grupo: movimientos de inventario, compras y tareas
// exigen team_leader; escritura de proyectos/materiales, aprobación de
// compras y borrado de tareas dept_manager; gestión de usuarios, auditoría,
// importación y borrado de proyectos/materiales admin. Las lecturas
// requieren solo sesión válida.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (login público, el resto con token)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", AuthMiddleware(deps.JWTSecret), authHandler.Refresh)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token); las escrituras quedan auditadas.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), AuditMiddleware(deps.AuditSvc))

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/reset-password", userHandler.ResetPassword)
	users.Delete("/:id", userHandler.Delete)

	// Departamentos y equipos (lectura para cualquier sesión)
	orgHandler := NewOrgHandler(deps.OrgUC)
	protected.Get("/departments", orgHandler.ListDepartments)
	protected.Get("/teams", orgHandler.ListTeams)

	// Projects (lectura libre, escritura dept_manager+, borrado admin)
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := protected.Group("/projects")
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Post("/", RequireRole(entity.RoleDeptManager), projectHandler.Create)
	projects.Put("/:id", RequireRole(entity.RoleDeptManager), projectHandler.Update)
	projects.Delete("/:id", RequireRole(entity.RoleAdmin), projectHandler.Delete)

	// Tasks (report-work abierto a worker; altas team_leader+, bajas dept_manager+)
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks := protected.Group("/tasks")
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Post("/:id/report-work", taskHandler.ReportWork)
	tasks.Post("/", RequireRole(entity.RoleTeamLeader), taskHandler.Create)
	tasks.Put("/:id", RequireRole(entity.RoleTeamLeader), taskHandler.Update)
	tasks.Delete("/:id", RequireRole(entity.RoleDeptManager), taskHandler.Delete)

	// Materials (lectura libre, escritura dept_manager+, borrado admin)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := protected.Group("/materials")
	materials.Get("/", materialHandler.List)
	materials.Get("/categories", materialHandler.Categories)
	materials.Get("/:id", materialHandler.Get)
	materials.Post("/", RequireRole(entity.RoleDeptManager), materialHandler.Create)
	materials.Put("/:id", RequireRole(entity.RoleDeptManager), materialHandler.Update)
	materials.Delete("/:id", RequireRole(entity.RoleAdmin), materialHandler.Delete)

	// Inventory (movimientos team_leader+, consultas de stock libres)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/transactions", RequireRole(entity.RoleTeamLeader), inventoryHandler.ApplyMovement)
	invGroup.Get("/transactions", inventoryHandler.ListLedger)
	invGroup.Get("/stock", inventoryHandler.ListStock)
	invGroup.Get("/alerts", inventoryHandler.ListAlerts)

	// Procurement (altas y cambios team_leader+, aprobación dept_manager+)
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	procurement := protected.Group("/procurement")
	procurement.Get("/", procurementHandler.List)
	procurement.Get("/:id", procurementHandler.Get)
	procurement.Post("/", RequireRole(entity.RoleTeamLeader), procurementHandler.Create)
	procurement.Put("/:id", RequireRole(entity.RoleTeamLeader), procurementHandler.Update)
	procurement.Post("/:id/approve", RequireRole(entity.RoleDeptManager), procurementHandler.Approve)

	// Notifications (cada usuario ve las suyas)
	notificationHandler := NewNotificationHandler(deps.NotifySvc)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/project-progress", dashboardHandler.ProjectProgress)
	dashboard.Get("/task-distribution", dashboardHandler.TaskDistribution)

	// Audit (consultas admin; cada usuario puede ver su propia actividad)
	auditHandler := NewAuditHandler(deps.AuditSvc)
	protected.Get("/audit/my-activity", auditHandler.MyActivity)
	auditGroup := protected.Group("/audit", RequireRole(entity.RoleAdmin))
	auditGroup.Get("/logs", auditHandler.List)
	auditGroup.Get("/stats", auditHandler.Stats)
	auditGroup.Get("/users/:id/activity", auditHandler.UserActivity)

	// Importación Excel (solo admin)
	importHandler := NewImportHandler(deps.Importer)
	protected.Post("/import", RequireRole(entity.RoleAdmin), importHandler.Import)
}
