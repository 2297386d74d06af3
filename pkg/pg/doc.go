// Package pg manages the PostgreSQL connection pool and schema migrations.
//
// Connections are pooled through pgxpool and handed to request-scoped code as
// a pool reference; acquisition and release per query is handled by the
// driver. Migrations are plain SQL files applied with goose at startup.
package pg
