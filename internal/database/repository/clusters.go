package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ClusterRepo handles clusters.
type ClusterRepo struct {
	db *sql.DB
}

func NewClusterRepo(db *sql.DB) *ClusterRepo { return &ClusterRepo{db: db} }

func (r *ClusterRepo) Upsert(ctx context.Context, c Cluster) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO clusters(id, name, api, domain, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 api=excluded.api,
	 domain=excluded.domain,
	 updated_at=CURRENT_TIMESTAMP;
	`, c.ID, c.Name, c.API, c.Domain)
	return err
}

func (r *ClusterRepo) Get(ctx context.Context, id string) (*Cluster, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, api, domain, created_at, updated_at FROM clusters WHERE id = ?`, id)
	var c Cluster
	if err := row.Scan(&c.ID, &c.Name, &c.API, &c.Domain, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClusterRepo) List(ctx context.Context) ([]Cluster, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, api, domain, created_at, updated_at FROM clusters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Cluster
	for rows.Next() {
		var c Cluster
		if err := rows.Scan(&c.ID, &c.Name, &c.API, &c.Domain, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
