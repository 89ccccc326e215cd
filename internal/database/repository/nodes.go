package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// NodeRepo handles cluster nodes and their labels.
type NodeRepo struct {
	db *sql.DB
}

func NewNodeRepo(db *sql.DB) *NodeRepo { return &NodeRepo{db: db} }

// Upsert writes the node row and replaces its label set.
func (r *NodeRepo) Upsert(ctx context.Context, n Node) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := upsertNode(ctx, tx, n); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func upsertNode(ctx context.Context, tx *sql.Tx, n Node) error {
	status := n.Status
	if status == "" {
		status = "Ready"
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO nodes(id, cluster_id, name, ip, status, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 cluster_id=excluded.cluster_id,
	 name=excluded.name,
	 ip=excluded.ip,
	 status=excluded.status;
	`, n.ID, n.ClusterID, n.Name, n.IP, status); err != nil {
		return fmt.Errorf("upsert node %s: %w", n.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM node_labels WHERE node_id = ?`, n.ID); err != nil {
		return fmt.Errorf("clear labels %s: %w", n.Name, err)
	}
	for k, v := range n.Labels {
		if _, err := tx.ExecContext(ctx, `INSERT INTO node_labels(node_id, key, value) VALUES (?, ?, ?)`, n.ID, k, v); err != nil {
			return fmt.Errorf("label %s on %s: %w", k, n.Name, err)
		}
	}
	return nil
}

// ListByCluster returns the cluster's nodes ordered by name, labels filled in.
func (r *NodeRepo) ListByCluster(ctx context.Context, clusterID string) ([]Node, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, cluster_id, name, ip, status, created_at
	FROM nodes WHERE cluster_id = ? ORDER BY name`, clusterID)
	if err != nil {
		return nil, err
	}
	var out []Node
	index := map[string]int{}
	for rows.Next() {
		var n Node
		if err := rows.Scan(&n.ID, &n.ClusterID, &n.Name, &n.IP, &n.Status, &n.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		n.Labels = map[string]string{}
		index[n.ID] = len(out)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	lrows, err := r.db.QueryContext(ctx, `
	SELECT l.node_id, l.key, l.value
	FROM node_labels l JOIN nodes n ON n.id = l.node_id
	WHERE n.cluster_id = ?`, clusterID)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()
	for lrows.Next() {
		var id, k, v string
		if err := lrows.Scan(&id, &k, &v); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			out[i].Labels[k] = v
		}
	}
	return out, lrows.Err()
}
