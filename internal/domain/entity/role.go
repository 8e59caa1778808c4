package entity

// Role rol de un usuario dentro del astillero.
// La jerarquía es un orden total explícito: worker < team_leader < dept_manager < admin.
type Role string

// Roles válidos, de menor a mayor autoridad.
const (
	RoleWorker      Role = "worker"
	RoleTeamLeader  Role = "team_leader"
	RoleDeptManager Role = "dept_manager"
	RoleAdmin       Role = "admin"
)

// Level devuelve la posición ordinal del rol. 0 = rol desconocido.
func (r Role) Level() int {
	switch r {
	case RoleWorker:
		return 1
	case RoleTeamLeader:
		return 2
	case RoleDeptManager:
		return 3
	case RoleAdmin:
		return 4
	}
	return 0
}

// IsValid indica si el rol pertenece a la jerarquía.
func (r Role) IsValid() bool { return r.Level() > 0 }

// AtLeast indica si el rol tiene autoridad igual o superior a min.
// Un rol desconocido nunca pasa el chequeo.
func (r Role) AtLeast(min Role) bool {
	return r.Level() > 0 && r.Level() >= min.Level()
}
