package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleSupport = "support"
	RoleEditor  = "editor"
	RoleViewer  = "viewer"
)

// ManagerRoles pueden ajustar stock, transferir y decidir solicitudes en cualquier unidad.
var ManagerRoles = []string{RoleAdmin, RoleSupport}

// RequesterRoles pueden registrar solicitudes.
var RequesterRoles = []string{RoleAdmin, RoleSupport, RoleEditor}

// User representa un usuario del sistema. Los roles editor y viewer quedan acotados a su unidad.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	DisplayName  string
	Email        string
	Phone        string
	Role         string
	UnitID       string
	SectorID     string
	Permissions  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsGlobalRole indica si el rol ve y gestiona todas las unidades.
func IsGlobalRole(role string) bool {
	return role == RoleAdmin || role == RoleSupport
}

// CanManageStock indica si el rol puede ajustar y transferir stock.
// Es precondición de StockLedger.ApplyDelta y TransferCoordinator.Transfer; el llamador la verifica.
func CanManageStock(role string) bool {
	return IsGlobalRole(role)
}

// CanDecideRequests indica si el rol puede aprobar o rechazar solicitudes.
// Es precondición de requests.Workflow.Decide; el llamador la verifica.
func CanDecideRequests(role string) bool {
	return IsGlobalRole(role)
}

// CanSubmitRequests indica si el rol puede registrar solicitudes.
func CanSubmitRequests(role string) bool {
	return role != RoleViewer && ValidRole(role)
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupport, RoleEditor, RoleViewer:
		return true
	}
	return false
}
