package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNoSource is returned when a draft has nothing to load clusters from.
	ErrNoSource = errors.New("deploy: no cluster source")

	// ErrClusterNotFound is returned when selecting a cluster the list does
	// not contain.
	ErrClusterNotFound = errors.New("deploy: cluster not found")
)

// Cluster is a deployment target as the wizard sees it.
type Cluster struct {
	ID     string
	Name   string
	Domain string
}

// Node is a host of the selected cluster.
type Node struct {
	Name   string
	IP     string
	Status string
	Labels map[string]string
}

// ClusterSource lists clusters and their nodes.
type ClusterSource interface {
	ListClusters(ctx context.Context) ([]Cluster, error)
	ListNodes(ctx context.Context, clusterID string) ([]Node, error)
}

// ClusterList holds the loaded clusters and which one is chosen.
type ClusterList struct {
	Clusters []Cluster
	selected int
}

func (cl *ClusterList) Len() int { return len(cl.Clusters) }

// Selected returns the chosen cluster; false when the list is empty.
func (cl *ClusterList) Selected() (Cluster, bool) {
	if len(cl.Clusters) == 0 {
		return Cluster{}, false
	}
	return cl.Clusters[cl.selected], true
}

// SelectedIndex is the position of the chosen cluster, -1 when empty.
func (cl *ClusterList) SelectedIndex() int {
	if len(cl.Clusters) == 0 {
		return -1
	}
	return cl.selected
}

func (cl *ClusterList) indexOf(id string) int {
	for i, c := range cl.Clusters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ClusterSnapshot is the result of a cluster or node load, applied to a
// draft with ApplyClusters.
type ClusterSnapshot struct {
	Clusters  []Cluster
	ClusterID string
	Nodes     []Node
	// NodesOnly marks a snapshot that only refreshes the node list.
	NodesOnly bool
}

// Draft is the in-progress deployment shared by the wizard pages.
type Draft struct {
	ID          string
	Config      Config
	ClusterList *ClusterList
	NodeList    *NodeList

	source ClusterSource
}

// ClusterJob returns a function that loads clusters and the nodes of the
// preferred cluster (the configured one, else the first). It only captures
// values, so it can run off the UI loop.
func (d *Draft) ClusterJob() func(ctx context.Context) (ClusterSnapshot, error) {
	src := d.source
	preferred := d.Config.ClusterID
	return func(ctx context.Context) (ClusterSnapshot, error) {
		if src == nil {
			return ClusterSnapshot{}, ErrNoSource
		}
		clusters, err := src.ListClusters(ctx)
		if err != nil {
			return ClusterSnapshot{}, fmt.Errorf("list clusters: %w", err)
		}
		snap := ClusterSnapshot{Clusters: clusters}
		if len(clusters) == 0 {
			return snap, nil
		}
		snap.ClusterID = clusters[0].ID
		for _, c := range clusters {
			if c.ID == preferred {
				snap.ClusterID = c.ID
				break
			}
		}
		nodes, err := src.ListNodes(ctx, snap.ClusterID)
		if err != nil {
			return ClusterSnapshot{}, fmt.Errorf("list nodes of %s: %w", snap.ClusterID, err)
		}
		snap.Nodes = nodes
		return snap, nil
	}
}

// NodesJob returns a function loading the nodes of one cluster.
func (d *Draft) NodesJob(clusterID string) func(ctx context.Context) (ClusterSnapshot, error) {
	src := d.source
	return func(ctx context.Context) (ClusterSnapshot, error) {
		if src == nil {
			return ClusterSnapshot{}, ErrNoSource
		}
		nodes, err := src.ListNodes(ctx, clusterID)
		if err != nil {
			return ClusterSnapshot{}, fmt.Errorf("list nodes of %s: %w", clusterID, err)
		}
		return ClusterSnapshot{ClusterID: clusterID, Nodes: nodes, NodesOnly: true}, nil
	}
}

// ApplyClusters installs a loaded snapshot.
func (d *Draft) ApplyClusters(snap ClusterSnapshot) {
	if !snap.NodesOnly {
		d.ClusterList.Clusters = append([]Cluster(nil), snap.Clusters...)
		d.ClusterList.selected = 0
	}
	if i := d.ClusterList.indexOf(snap.ClusterID); i >= 0 {
		d.ClusterList.selected = i
		d.Config.ClusterID = snap.ClusterID
	}
	d.NodeList.SetNodes(snap.Nodes)
}

// InitCluster loads clusters synchronously and applies them.
func (d *Draft) InitCluster(ctx context.Context) error {
	snap, err := d.ClusterJob()(ctx)
	if err != nil {
		return err
	}
	d.ApplyClusters(snap)
	return nil
}

// SelectCluster marks the cluster with id as chosen. The caller reloads its
// nodes with NodesJob.
func (d *Draft) SelectCluster(id string) error {
	i := d.ClusterList.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClusterNotFound, id)
	}
	d.ClusterList.selected = i
	d.Config.ClusterID = id
	return nil
}

// FormatHealthChecker puts the health checker into canonical form. Pages
// call it when they adopt a draft handed over from another page.
func (d *Draft) FormatHealthChecker() {
	d.Config.HealthChecker = d.Config.HealthChecker.Normalized()
}

// Spec is the serializable view of a draft used for previews.
type Spec struct {
	ID           string            `json:"id"`
	Cluster      string            `json:"cluster,omitempty"`
	NodeSelector map[string][]string `json:"nodeSelector,omitempty"`
	Config       Config            `json:"config"`
}

func (d *Draft) Spec() Spec {
	s := Spec{ID: d.ID, Config: d.Config}
	if c, ok := d.ClusterList.Selected(); ok {
		s.Cluster = c.Name
	}
	if sel := d.NodeList.NodeSelector(); len(sel) > 0 {
		s.NodeSelector = sel
	}
	return s
}

// Factory builds new drafts.
type Factory struct {
	Source             ClusterSource
	DefaultVersionType string
}

// NewDraft returns an empty draft whose cluster list still needs loading.
func (f *Factory) NewDraft() *Draft {
	vt := f.DefaultVersionType
	if vt == "" {
		vt = VersionTypeCustom
	}
	return &Draft{
		ID: uuid.NewString(),
		Config: Config{
			VersionType:   vt,
			HostEnv:       HostEnvTest,
			Replicas:      1,
			HealthChecker: HealthChecker{Type: HealthCheckNone},
		},
		ClusterList: &ClusterList{},
		NodeList:    NewNodeList(nil),
		source:      f.Source,
	}
}
