package domain

// Role роль действующего лица, полученная из заголовков аутентификации
type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
)

// Valid проверяет, что роль известна
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleOperator
}
