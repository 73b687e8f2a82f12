package service

// Actor 当前操作者，由路由层从认证上下文构造后显式传入
type Actor struct {
	UserID  uint
	IsStaff bool
}

// Authenticated 是否已登录
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

// AccessRule 单次操作的访问规则
type AccessRule struct {
	RequireStaff bool
	// OwnerID 为 0 时不校验归属
	OwnerID uint
	// StaffBypassOwner 店员可跳过归属校验
	StaffBypassOwner bool
}

func requireUser() AccessRule {
	return AccessRule{}
}

func requireStaff() AccessRule {
	return AccessRule{RequireStaff: true}
}

func ownedBy(ownerID uint) AccessRule {
	return AccessRule{OwnerID: ownerID}
}

func ownedByOrStaff(ownerID uint) AccessRule {
	return AccessRule{OwnerID: ownerID, StaffBypassOwner: true}
}

// authorize 在服务操作入口执行的统一权限校验
func authorize(actor Actor, rule AccessRule) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if rule.RequireStaff && !actor.IsStaff {
		return ErrStaffRequired
	}
	if rule.OwnerID != 0 && rule.OwnerID != actor.UserID {
		if rule.StaffBypassOwner && actor.IsStaff {
			return nil
		}
		return ErrNotOwner
	}
	return nil
}
