// Package postgres implements the persistence interfaces of the auth and
// rbac packages on top of a pgx connection pool.
package postgres
