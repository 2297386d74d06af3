package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/callmefred/thebestapp/rbac"
)

// RoleSource loads role to feature grants from the role_features table. It
// satisfies rbac.Source.
type RoleSource struct {
	pool *pgxpool.Pool
}

var _ rbac.Source = (*RoleSource)(nil)

// NewRoleSource creates a role source backed by the pool.
func NewRoleSource(pool *pgxpool.Pool) *RoleSource {
	return &RoleSource{pool: pool}
}

// Load returns feature IDs keyed by role ID.
func (s *RoleSource) Load(ctx context.Context) (map[int64][]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT role_id, feature_id FROM role_features ORDER BY role_id, feature_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load role grants: %w", err)
	}
	defer rows.Close()

	grants := make(map[int64][]int64)
	for rows.Next() {
		var roleID, featureID int64
		if err := rows.Scan(&roleID, &featureID); err != nil {
			return nil, fmt.Errorf("failed to scan role grant: %w", err)
		}
		grants[roleID] = append(grants[roleID], featureID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read role grants: %w", err)
	}
	return grants, nil
}
