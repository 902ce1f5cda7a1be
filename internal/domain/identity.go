package domain

// Identity 已认证身份：数据库用户 或 固定凭证管理员声明
type Identity interface {
	Subject() string
	IsAdmin() bool
	identity()
}

type UserIdentity struct {
	User *User
}

func (i UserIdentity) Subject() string { return i.User.Email }
func (i UserIdentity) IsAdmin() bool   { return i.User.IsAdmin() }
func (UserIdentity) identity()         {}

// AdminClaim 由 token 声明支撑，不对应数据库行
type AdminClaim struct {
	Username string
}

func (a AdminClaim) Subject() string { return a.Username }
func (AdminClaim) IsAdmin() bool     { return true }
func (AdminClaim) identity()         {}
