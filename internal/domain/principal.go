package domain

// Principal аутентифицированный пользователь запроса (из JWT)
type Principal struct {
	Email        string
	Name         string
	Role         Role
	BusinessCode string // пусто у клиентов
	SuperAdmin   bool
}

// IsAdmin владелец бизнеса
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanManage может ли пользователь управлять бизнесом
func (p Principal) CanManage(businessCode string) bool {
	if p.SuperAdmin {
		return true
	}
	return p.IsAdmin() && p.BusinessCode != "" && p.BusinessCode == businessCode
}
