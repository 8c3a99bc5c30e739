package voter

import (
	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/server/models"
)

const (
	// ImpersonatorAttribute is left to other voters.
	ImpersonatorAttribute = "IS_IMPERSONATOR"

	adminUserName = "Grafikart"
	adminUserID   = int64(1)
)

// AdminVoter grants every attribute to the administrator account.
type AdminVoter struct {
	env string
}

// NewAdminVoter returns an AdminVoter bound to the environment tag env.
func NewAdminVoter(env string) *AdminVoter {
	return &AdminVoter{env: env}
}

// Supports reports true for every attribute except ImpersonatorAttribute.
func (v *AdminVoter) Supports(attribute string) bool {
	return attribute != ImpersonatorAttribute
}

// Decide grants any attribute to the administrator; see IsAdmin.
func (v *AdminVoter) Decide(_ string, identity any) bool {
	return IsAdmin(identity, v.env)
}

func (v *AdminVoter) String() string { return "admin" }

// IsAdmin reports whether identity is the administrator in env.
// In production both the user name and the id must match; elsewhere the
// user name alone is enough.
func IsAdmin(identity any, env string) bool {
	user, ok := identity.(*models.User)
	if !ok || user == nil {
		return false
	}

	if env == common.ProductionEnv {
		return user.UserName == adminUserName && user.ID == adminUserID
	}

	return user.UserName == adminUserName
}
