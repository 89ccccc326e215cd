package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jask/domedeploy/internal/database/repository"
	"github.com/jask/domedeploy/internal/deploy"
)

// ClusterService serves the wizard's cluster and node lookups from the
// console database.
type ClusterService struct {
	Clusters *repository.ClusterRepo
	Nodes    *repository.NodeRepo
	Log      *zap.Logger
	// Timeout bounds each lookup; zero means no extra bound.
	Timeout time.Duration
}

func (s *ClusterService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *ClusterService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *ClusterService) ListClusters(ctx context.Context) ([]deploy.Cluster, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := s.Clusters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("clusters: %w", err)
	}
	out := make([]deploy.Cluster, 0, len(rows))
	for _, c := range rows {
		out = append(out, deploy.Cluster{ID: c.ID, Name: c.Name, Domain: c.Domain})
	}
	s.logger().Debug("listed clusters", zap.Int("count", len(out)), zap.Duration("took", time.Since(start)))
	return out, nil
}

func (s *ClusterService) ListNodes(ctx context.Context, clusterID string) ([]deploy.Node, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.Nodes.ListByCluster(ctx, clusterID)
	if err != nil {
		return nil, fmt.Errorf("nodes of %s: %w", clusterID, err)
	}
	out := make([]deploy.Node, 0, len(rows))
	for _, n := range rows {
		out = append(out, deploy.Node{Name: n.Name, IP: n.IP, Status: n.Status, Labels: n.Labels})
	}
	s.logger().Debug("listed nodes", zap.String("cluster", clusterID), zap.Int("count", len(out)))
	return out, nil
}
