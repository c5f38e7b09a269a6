package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "maaziride/internal/errors"
	"maaziride/internal/mirror"
	"maaziride/internal/model"
	"maaziride/internal/repository"
)

// RoleResolver determines which role applies to an authenticated principal.
// The mirror is consulted first because it is the cheaper read; the
// identity record settles anything the mirror does not know.
type RoleResolver interface {
	Resolve(ctx context.Context, principalID uuid.UUID) (model.Role, error)
}

type roleResolver struct {
	users  repository.UserRepository
	mirror mirror.Store
}

// NewRoleResolver creates a role resolver over both identity stores.
func NewRoleResolver(users repository.UserRepository, mirrorStore mirror.Store) RoleResolver {
	return &roleResolver{users: users, mirror: mirrorStore}
}

// Resolve returns the principal's role. A principal unknown to both stores
// yields RoleUnset together with ErrIdentityNotFound; callers route such
// principals to role selection rather than failing the request.
func (r *roleResolver) Resolve(ctx context.Context, principalID uuid.UUID) (model.Role, error) {
	md, err := r.mirror.GetMetadata(ctx, principalID.String())
	if err == nil && md != nil {
		role := model.Role(md.Role)
		if role == model.RoleRider || role == model.RoleDriver || role == model.RoleAdmin {
			return role, nil
		}
	}

	user, err := r.users.FindByID(ctx, principalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if md == nil {
				return model.RoleUnset, apperrors.ErrIdentityNotFound
			}
			return model.RoleUnset, nil
		}
		return model.RoleUnset, fmt.Errorf("find user: %w", err)
	}

	if user.Role == "" {
		return model.RoleUnset, nil
	}
	return user.Role, nil
}
