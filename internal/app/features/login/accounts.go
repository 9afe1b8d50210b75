package login

import (
	"context"

	adminstore "github.com/dalemusser/mediateam/internal/app/store/admins"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
)

// Accounts answers auth.AccountChecker by principal kind, so suspended
// users and disabled admins lose access before their token expires.
type Accounts struct {
	Users  *userstore.Store
	Admins *adminstore.Store
}

func (a Accounts) IsActive(ctx context.Context, p auth.Principal) (bool, error) {
	if p.IsAdmin() {
		return a.Admins.IsActive(ctx, p.ID)
	}
	return a.Users.IsActive(ctx, p.ID)
}
