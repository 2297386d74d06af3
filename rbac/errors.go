package rbac

import "errors"

var (
	// ErrPermissionDenied indicates the role exists but lacks the feature.
	ErrPermissionDenied = errors.New("rbac: permission denied")

	// ErrUnknownRole indicates the role has no grants at all.
	ErrUnknownRole = errors.New("rbac: unknown role")
)
