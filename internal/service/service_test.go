package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/domedeploy/internal/database"
	"github.com/jask/domedeploy/internal/database/repository"
	"github.com/jask/domedeploy/internal/deploy"
)

func TestClusterServiceFeedsDraft(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	svc := &ClusterService{
		Clusters: repository.NewClusterRepo(db),
		Nodes:    repository.NewNodeRepo(db),
		Timeout:  time.Second,
	}
	d := (&deploy.Factory{Source: svc}).NewDraft()
	require.NoError(t, d.InitCluster(ctx))

	c, ok := d.ClusterList.Selected()
	require.True(t, ok)
	require.Equal(t, "prod", c.Name)
	require.Len(t, d.NodeList.Nodes(), 3)

	d.NodeList.ToggleLabel("disk=ssd", true)
	require.Len(t, d.NodeList.MatchingNodes(), 2)
}

func TestCollectionServiceGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewCollectionRepo(db)
	require.NoError(t, repo.Upsert(ctx, repository.Collection{ID: "c", Name: "web"}))
	svc := &CollectionService{Collections: repo}

	got, err := svc.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, "web", got.Name)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
