package rbac

import "context"

// Authorizer checks role to feature grants.
type Authorizer interface {
	// Can returns nil if the role is granted the feature,
	// ErrPermissionDenied if not, and ErrUnknownRole for roles without any
	// grants.
	Can(roleID, featureID int64) error

	// VerifyRole returns ErrUnknownRole if the role has no grants.
	VerifyRole(roleID int64) error
}

// Source provides the role to feature mapping.
type Source interface {
	// Load returns feature IDs keyed by role ID.
	Load(ctx context.Context) (map[int64][]int64, error)
}

type authorizer struct {
	// grants is treated as immutable after construction.
	grants map[int64]map[int64]bool
}

// NewAuthorizer loads all grants from the source and precomputes the lookup
// table used for runtime checks.
func NewAuthorizer(ctx context.Context, source Source) (Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	grants := make(map[int64]map[int64]bool, len(roles))
	for roleID, features := range roles {
		set := make(map[int64]bool, len(features))
		for _, f := range features {
			set[f] = true
		}
		grants[roleID] = set
	}

	return &authorizer{grants: grants}, nil
}

func (a *authorizer) Can(roleID, featureID int64) error {
	features, ok := a.grants[roleID]
	if !ok {
		return ErrUnknownRole
	}
	if !features[featureID] {
		return ErrPermissionDenied
	}
	return nil
}

func (a *authorizer) VerifyRole(roleID int64) error {
	if _, ok := a.grants[roleID]; !ok {
		return ErrUnknownRole
	}
	return nil
}
