package domain

// Identity is the caller resolved by the authenticator. It is a closed set:
// ScopedAdmin or LegacyCaller. Authorization code switches on the concrete type.
type Identity interface {
	identity()
}

// ScopedAdmin is a database admin bound to exactly one company.
type ScopedAdmin struct {
	AdminID   int64  `json:"admin_id"`
	Username  string `json:"username"`
	CompanyID int64  `json:"company_id"`
}

// LegacyCaller authenticated with the shared legacy secret. It has no company binding
// and is authorized for every company's resources.
type LegacyCaller struct{}

func (ScopedAdmin) identity()  {}
func (LegacyCaller) identity() {}

// Resource describes the owner of a record an admin is about to read or mutate.
type Resource struct {
	Kind      string
	CompanyID int64
	Exists    bool
}

// CompanyScope restricts admin list queries. All is set only for the legacy caller.
type CompanyScope struct {
	CompanyID int64
	All       bool
}
