package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	clusters []Cluster
	nodes    map[string][]Node
	err      error
	calls    int
}

func (f *fakeSource) ListClusters(context.Context) ([]Cluster, error) {
	f.calls++
	return f.clusters, f.err
}

func (f *fakeSource) ListNodes(_ context.Context, id string) ([]Node, error) {
	return f.nodes[id], nil
}

func testNodes() []Node {
	return []Node{
		{Name: "n1", Labels: map[string]string{"env": "prod", "disk": "ssd"}},
		{Name: "n2", Labels: map[string]string{"env": "prod", "disk": "hdd"}},
		{Name: "n3", Labels: map[string]string{"env": "test", "bad key!": "x"}},
	}
}

func TestHealthCheckerNormalized(t *testing.T) {
	cases := []struct {
		name string
		in   HealthChecker
		want HealthChecker
	}{
		{"empty", HealthChecker{}, HealthChecker{Type: HealthCheckNone}},
		{"none clears", HealthChecker{Type: "none", Port: 80, URL: "/x"}, HealthChecker{Type: HealthCheckNone}},
		{"unknown", HealthChecker{Type: "grpc", Port: 1}, HealthChecker{Type: HealthCheckNone}},
		{"tcp", HealthChecker{Type: "tcp", Port: 80, URL: "/x", DelaySeconds: -3}, HealthChecker{Type: HealthCheckTCP, Port: 80, TimeoutSeconds: 10}},
		{"http default url", HealthChecker{Type: "HTTP", Port: 8080, TimeoutSeconds: 3}, HealthChecker{Type: HealthCheckHTTP, Port: 8080, TimeoutSeconds: 3, URL: "/"}},
		{"http slash", HealthChecker{Type: " http ", URL: "healthz", DelaySeconds: 5}, HealthChecker{Type: HealthCheckHTTP, URL: "/healthz", TimeoutSeconds: 10, DelaySeconds: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Normalized())
		})
	}
}

func TestBuildLabelSetOrderAndValidation(t *testing.T) {
	nl := NewNodeList(testNodes())
	var names []string
	for _, l := range nl.LabelsInfo().Labels() {
		names = append(names, l.Key)
	}
	require.Equal(t, []string{"disk=hdd", "disk=ssd", "env=prod", "env=test"}, names)

	l, ok := nl.LabelsInfo().Get("env=prod")
	require.True(t, ok)
	require.Equal(t, []string{"n1", "n2"}, l.Nodes)
}

func TestToggleLabelChangesOnlyThatLabel(t *testing.T) {
	nl := NewNodeList(testNodes())
	nl.ToggleLabel("env=prod", true)
	nl.ToggleLabel("disk=ssd", true)
	nl.ToggleLabel("env=test", true)
	require.Equal(t, []string{"disk=ssd", "env=prod", "env=test"}, nl.SelectedLabels())

	nl.ToggleLabel("missing=1", true)
	require.Equal(t, []string{"disk=ssd", "env=prod", "env=test"}, nl.SelectedLabels())

	nl.ToggleLabel("env=test", false)
	require.Equal(t, []string{"disk=ssd", "env=prod"}, nl.SelectedLabels())
}

func TestSameKeyValuesMatchAsAlternatives(t *testing.T) {
	nl := NewNodeList(testNodes())
	nl.ToggleLabel("env=prod", true)
	nl.ToggleLabel("env=test", true)
	require.Equal(t, map[string][]string{"env": {"prod", "test"}}, nl.NodeSelector())
	require.Len(t, nl.MatchingNodes(), 3)

	nl.ToggleLabel("disk=hdd", true)
	got := nl.MatchingNodes()
	require.Len(t, got, 1)
	require.Equal(t, "n2", got[0].Name)
}

func TestMatchingNodes(t *testing.T) {
	nl := NewNodeList(testNodes())
	require.Len(t, nl.MatchingNodes(), 3)

	nl.ToggleLabel("env=prod", true)
	require.Len(t, nl.MatchingNodes(), 2)

	nl.ToggleLabel("disk=ssd", true)
	got := nl.MatchingNodes()
	require.Len(t, got, 1)
	require.Equal(t, "n1", got[0].Name)
}

func TestSetNodesKeepsSurvivingSelection(t *testing.T) {
	nl := NewNodeList(testNodes())
	nl.ToggleLabel("env=prod", true)
	nl.ToggleLabel("disk=hdd", true)

	nl.SetNodes([]Node{{Name: "x", Labels: map[string]string{"env": "prod"}}})
	require.Equal(t, []string{"env=prod"}, nl.SelectedLabels())
}

func TestFilterLabelsSharesState(t *testing.T) {
	nl := NewNodeList(testNodes())
	f := FilterLabels(nl.LabelsInfo(), "PROD")
	require.Equal(t, 1, f.Len())

	nl.ToggleLabel("env=prod", true)
	l, ok := f.Get("env=prod")
	require.True(t, ok)
	require.True(t, l.Selected)

	require.Equal(t, 4, FilterLabels(nl.LabelsInfo(), "").Len())
	// one edit away from "disk"
	require.Equal(t, 2, FilterLabels(nl.LabelsInfo(), "dosk").Len())
	require.Equal(t, 0, FilterLabels(nl.LabelsInfo(), "zz").Len())
}

func TestInitClusterPrefersConfiguredCluster(t *testing.T) {
	src := &fakeSource{
		clusters: []Cluster{{ID: "a", Name: "alpha"}, {ID: "b", Name: "beta"}},
		nodes:    map[string][]Node{"b": testNodes()},
	}
	d := (&Factory{Source: src}).NewDraft()
	d.Config.ClusterID = "b"

	require.NoError(t, d.InitCluster(context.Background()))
	c, ok := d.ClusterList.Selected()
	require.True(t, ok)
	require.Equal(t, "beta", c.Name)
	require.Len(t, d.NodeList.Nodes(), 3)
}

func TestInitClusterFallsBackToFirst(t *testing.T) {
	src := &fakeSource{clusters: []Cluster{{ID: "a"}, {ID: "b"}}}
	d := (&Factory{Source: src}).NewDraft()
	d.Config.ClusterID = "gone"

	require.NoError(t, d.InitCluster(context.Background()))
	require.Equal(t, "a", d.Config.ClusterID)
}

func TestClusterJobErrors(t *testing.T) {
	d := (&Factory{}).NewDraft()
	_, err := d.ClusterJob()(context.Background())
	require.ErrorIs(t, err, ErrNoSource)

	boom := errors.New("boom")
	d = (&Factory{Source: &fakeSource{err: boom}}).NewDraft()
	require.ErrorIs(t, d.InitCluster(context.Background()), boom)
	require.Equal(t, 0, d.ClusterList.Len())
}

func TestSelectClusterAndNodesJob(t *testing.T) {
	src := &fakeSource{
		clusters: []Cluster{{ID: "a"}, {ID: "b"}},
		nodes:    map[string][]Node{"b": testNodes()[:1]},
	}
	d := (&Factory{Source: src}).NewDraft()
	require.NoError(t, d.InitCluster(context.Background()))

	require.ErrorIs(t, d.SelectCluster("zzz"), ErrClusterNotFound)
	require.NoError(t, d.SelectCluster("b"))

	snap, err := d.NodesJob("b")(context.Background())
	require.NoError(t, err)
	d.ApplyClusters(snap)
	require.Equal(t, 2, d.ClusterList.Len())
	require.Equal(t, "b", d.Config.ClusterID)
	require.Len(t, d.NodeList.Nodes(), 1)
}

func TestNewDraftDefaults(t *testing.T) {
	d := (&Factory{DefaultVersionType: VersionTypeYAML}).NewDraft()
	require.NotEmpty(t, d.ID)
	require.Equal(t, VersionTypeYAML, d.Config.VersionType)
	require.False(t, d.Config.IsCustomImage())
	require.Equal(t, 0, d.ClusterList.Len())

	d2 := (&Factory{}).NewDraft()
	require.True(t, d2.Config.IsCustomImage())
	require.NotEqual(t, d.ID, d2.ID)
}

func TestSpecIncludesSelector(t *testing.T) {
	src := &fakeSource{clusters: []Cluster{{ID: "a", Name: "alpha"}}, nodes: map[string][]Node{"a": testNodes()}}
	d := (&Factory{Source: src}).NewDraft()
	require.NoError(t, d.InitCluster(context.Background()))
	d.NodeList.ToggleLabel("disk=ssd", true)

	s := d.Spec()
	require.Equal(t, "alpha", s.Cluster)
	require.Equal(t, map[string][]string{"disk": {"ssd"}}, s.NodeSelector)
}
