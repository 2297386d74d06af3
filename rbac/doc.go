// Package rbac answers "does role R have feature F". Role to feature grants
// are loaded once at startup from a pluggable Source (the role_features
// table in production, a YAML file in development and tests) and held in an
// immutable map, so permission checks are cheap and safe under concurrency.
//
// Denial is an explicit error value, distinguishable from an unknown role,
// so callers can render a proper authorization failure instead of a generic
// redirect.
package rbac
