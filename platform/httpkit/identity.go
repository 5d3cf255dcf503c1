package httpkit

import (
	"github.com/gin-gonic/gin"
)

const (
	// ContextIdentityKey is the gin context key for the dashboard caller identity.
	ContextIdentityKey = "dashboardIdentity"

	// allOperators is the operator claim that grants access to every operator.
	allOperators = "*"
)

// Identity is the authenticated dashboard caller.
type Identity struct {
	Subject string
	// OperatorID restricts the caller to a single operator's data. "*" means all.
	OperatorID string
}

// CanView reports whether the caller may read data for operatorID.
func (i Identity) CanView(operatorID string) bool {
	return i.OperatorID == allOperators || i.OperatorID == operatorID
}

// anonymous is used when dashboard auth is disabled.
var anonymous = Identity{Subject: "anonymous", OperatorID: allOperators}

// GetIdentity returns the caller identity set by AuthRequired, or an
// unrestricted anonymous identity when auth is not configured.
func GetIdentity(c *gin.Context) Identity {
	if v, ok := c.Get(ContextIdentityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return anonymous
}
