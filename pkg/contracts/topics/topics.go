package topics

const (
	// Auditoria das ações da equipe no console
	StaffActions = "staff_actions"
)
