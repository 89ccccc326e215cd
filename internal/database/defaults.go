package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/domedeploy/internal/database/repository"
)

type seedNode struct {
	name   string
	ip     string
	labels map[string]string
}

type seedCluster struct {
	name   string
	api    string
	domain string
	nodes  []seedNode
}

var defaultCollections = []repository.Collection{
	{Name: "platform", Description: "Shared platform services"},
	{Name: "web", Description: "Customer facing web projects"},
}

var defaultClusters = []seedCluster{
	{
		name: "prod", api: "https://10.16.0.1:6443", domain: "prod.local",
		nodes: []seedNode{
			{name: "prod-node-01", ip: "10.16.0.11", labels: map[string]string{"env": "prod", "disk": "ssd", "zone": "a"}},
			{name: "prod-node-02", ip: "10.16.0.12", labels: map[string]string{"env": "prod", "disk": "ssd", "zone": "b"}},
			{name: "prod-node-03", ip: "10.16.0.13", labels: map[string]string{"env": "prod", "disk": "hdd", "gpu": "true"}},
		},
	},
	{
		name: "staging", api: "https://10.17.0.1:6443", domain: "staging.local",
		nodes: []seedNode{
			{name: "stg-node-01", ip: "10.17.0.11", labels: map[string]string{"env": "test", "zone": "a"}},
			{name: "stg-node-02", ip: "10.17.0.12", labels: map[string]string{"env": "test", "zone": "b"}},
		},
	},
}

func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+name)).String()
}

// SeedDefaults ensures a fresh database has collections and clusters to pick
// from. It does nothing once any cluster exists.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	clusters, err := repository.NewClusterRepo(db).List(ctx)
	if err == nil && len(clusters) > 0 {
		return nil
	}

	colRepo := repository.NewCollectionRepo(db)
	for _, c := range defaultCollections {
		c.ID = seedID("collection", c.Name)
		if err := colRepo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed collection %s: %w", c.Name, err)
		}
	}

	clusterRepo := repository.NewClusterRepo(db)
	nodeRepo := repository.NewNodeRepo(db)
	for _, sc := range defaultClusters {
		cl := repository.Cluster{ID: seedID("cluster", sc.name), Name: sc.name, API: sc.api, Domain: sc.domain}
		if err := clusterRepo.Upsert(ctx, cl); err != nil {
			return fmt.Errorf("seed cluster %s: %w", sc.name, err)
		}
		for _, sn := range sc.nodes {
			n := repository.Node{
				ID:        seedID("node", sc.name+"/"+sn.name),
				ClusterID: cl.ID,
				Name:      sn.name,
				IP:        sn.ip,
				Labels:    sn.labels,
			}
			if err := nodeRepo.Upsert(ctx, n); err != nil {
				return fmt.Errorf("seed node %s: %w", sn.name, err)
			}
		}
	}
	return nil
}
