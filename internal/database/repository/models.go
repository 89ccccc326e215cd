package repository

import "time"

// Collection groups the projects a user deploys together.
type Collection struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cluster is a target cluster a deployment can run on.
type Cluster struct {
	ID        string
	Name      string
	API       string
	Domain    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Node is a cluster host. Labels are key -> value.
type Node struct {
	ID        string
	ClusterID string
	Name      string
	IP        string
	Status    string
	Labels    map[string]string
	CreatedAt time.Time
}
