package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/domedeploy/internal/database"
	"github.com/jask/domedeploy/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNodeUpsertReplacesLabels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	clusters := repository.NewClusterRepo(db)
	require.NoError(t, clusters.Upsert(ctx, repository.Cluster{ID: "c1", Name: "one"}))

	nodes := repository.NewNodeRepo(db)
	n := repository.Node{ID: "n1", ClusterID: "c1", Name: "host-1", Labels: map[string]string{"a": "1", "b": "2"}}
	require.NoError(t, nodes.Upsert(ctx, n))

	n.Labels = map[string]string{"c": "3"}
	require.NoError(t, nodes.Upsert(ctx, n))

	got, err := nodes.ListByCluster(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, map[string]string{"c": "3"}, got[0].Labels)
	require.Equal(t, "Ready", got[0].Status)
}

func TestNodesScopedToCluster(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	clusters := repository.NewClusterRepo(db)
	require.NoError(t, clusters.Upsert(ctx, repository.Cluster{ID: "c1", Name: "one"}))
	require.NoError(t, clusters.Upsert(ctx, repository.Cluster{ID: "c2", Name: "two"}))

	nodes := repository.NewNodeRepo(db)
	require.NoError(t, nodes.Upsert(ctx, repository.Node{ID: "n1", ClusterID: "c1", Name: "b"}))
	require.NoError(t, nodes.Upsert(ctx, repository.Node{ID: "n2", ClusterID: "c1", Name: "a"}))
	require.NoError(t, nodes.Upsert(ctx, repository.Node{ID: "n3", ClusterID: "c2", Name: "c"}))

	got, err := nodes.ListByCluster(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Name)
	require.Empty(t, got[0].Labels)
}

func TestGetMissingReturnsNil(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	c, err := repository.NewClusterRepo(db).Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, c)

	col, err := repository.NewCollectionRepo(db).Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, col)
}

func TestCollectionUpsertRenames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	repo := repository.NewCollectionRepo(db)
	require.NoError(t, repo.Upsert(ctx, repository.Collection{ID: "x", Name: "old"}))
	require.NoError(t, repo.Upsert(ctx, repository.Collection{ID: "x", Name: "new", Description: "d"}))

	got, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "new", got.Name)
	require.Equal(t, "d", got.Description)
}
