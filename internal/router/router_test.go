package router

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoAndBack(t *testing.T) {
	r := New(Route{State: DeployCollectionManage})
	r.Go(DeployManage, Params{"id": "1", "name": "web"})
	r.Go(CreateDeployCommon, Params{"collectionId": "1", "collectionName": "web"})

	require.Equal(t, CreateDeployCommon, r.Current().State)
	require.Equal(t, "web", r.Current().Param("collectionName"))
	prev, ok := r.Previous()
	require.True(t, ok)
	require.Equal(t, DeployManage, prev.State)

	require.True(t, r.Back())
	require.Equal(t, DeployManage, r.Current().State)
	require.True(t, r.Back())
	require.False(t, r.Back())
	require.Equal(t, DeployCollectionManage, r.Current().State)
}

func TestGoCopiesParams(t *testing.T) {
	r := New(Route{})
	p := Params{"id": "1"}
	r.Go(DeployManage, p)
	p["id"] = "2"
	require.Equal(t, "1", r.Current().Param("id"))
	_, ok := r.Previous()
	require.False(t, ok, "empty start route is not kept in history")
}

func TestSeqBumpsOnSameRoute(t *testing.T) {
	r := New(Route{State: DeployManage})
	before := r.Seq()
	r.Go(DeployManage, nil)
	require.Greater(t, r.Seq(), before)
	require.Equal(t, "", r.Current().Param("missing"))
}
