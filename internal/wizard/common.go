// Package wizard holds the page controllers of the deployment-creation
// wizard. Controllers own no rendering: a host feeds them route parameters
// and key events and renders their exported state.
package wizard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/domedeploy/internal/databus"
	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/router"
)

// DraftKey is the bus key the wizard pages hand the draft over with.
const DraftKey = "createDeployInfoCommon"

// Route parameter names.
const (
	ParamCollectionID   = "collectionId"
	ParamCollectionName = "collectionName"
	ParamID             = "id"
	ParamName           = "name"
)

// LoadingClusters names the cluster bootstrap in Loadings.
const LoadingClusters = "clusters"

// KeyCode identifies the keys the label filter reacts to.
type KeyCode int

const (
	KeyOther     KeyCode = 0
	KeyBackspace KeyCode = 8
	KeyEnter     KeyCode = 13
)

// Navigator moves to another page.
type Navigator interface {
	Go(state router.State, params router.Params)
}

// Store is the cross-page bus as the wizard uses it. Take reads and clears
// an entry in one step.
type Store interface {
	Take(key string) (any, bool)
	Set(key string, value any)
}

// DraftFactory builds a fresh draft.
type DraftFactory interface {
	NewDraft() *deploy.Draft
}

// PageTitle is the page chrome a controller announces on entry.
type PageTitle struct {
	Title       string
	Description string
	Mod         string
}

// CollectionInfo identifies the collection the deployment is created in.
type CollectionInfo struct {
	CollectionID   string
	CollectionName string
}

// Breadcrumb points back at the parent page.
type Breadcrumb struct {
	Name   string
	Parent router.Route
}

// LabelKey is the label-filter input buffer.
type LabelKey struct {
	Key string
}

// ClusterJob loads clusters off the UI loop.
type ClusterJob func(ctx context.Context) (deploy.ClusterSnapshot, error)

// Deps are the collaborators of CommonStep.
type Deps struct {
	Nav     Navigator
	Store   Store
	Factory DraftFactory
	Log     *zap.Logger
	// OnTitle receives the page title on entry. Optional.
	OnTitle func(PageTitle)
}

// CommonStep is the "choose deployment type" step: it picks up or starts
// the draft, lets the user narrow nodes by label, and routes to the image
// or raw flow.
type CommonStep struct {
	Title          PageTitle
	Breadcrumb     Breadcrumb
	CollectionInfo CollectionInfo
	DeployIns      *deploy.Draft
	Config         *deploy.Config
	LabelKey       LabelKey
	Loadings       *Loadings
	ValidHost      bool

	deps          Deps
	log           *zap.Logger
	ready         bool
	clusterIssued bool
}

// NewCommonStep returns a step that does nothing until Enter succeeds.
func NewCommonStep(deps Deps) *CommonStep {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &CommonStep{deps: deps, log: log.Named("createDeployCommon")}
}

// Enter runs page initialization with the route parameters. It returns
// false when the page redirected away instead.
func (s *CommonStep) Enter(params router.Params) bool {
	s.ready = false
	s.clusterIssued = false

	id, name := params[ParamCollectionID], params[ParamCollectionName]
	if id == "" || name == "" {
		s.log.Info("missing collection params, redirecting", zap.String("collectionId", id), zap.String("collectionName", name))
		s.deps.Nav.Go(router.DeployCollectionManage, nil)
		return false
	}

	s.Title = PageTitle{
		Title:       "New deployment",
		Description: "Choose one or more project images to deploy together.",
		Mod:         "deployManage",
	}
	if s.deps.OnTitle != nil {
		s.deps.OnTitle(s.Title)
	}

	s.CollectionInfo = CollectionInfo{CollectionID: id, CollectionName: name}
	s.Breadcrumb = Breadcrumb{
		Name:   name,
		Parent: router.Route{State: router.DeployManage, Params: s.collectionRouteParams()},
	}

	s.DeployIns = s.takeDraft()
	if s.DeployIns == nil {
		s.DeployIns = s.deps.Factory.NewDraft()
		s.log.Debug("started new draft", zap.String("draft", s.DeployIns.ID))
	}
	s.Config = &s.DeployIns.Config

	s.LabelKey = LabelKey{}
	s.Loadings = NewLoadings()
	s.ValidHost = false
	s.ready = true
	return true
}

func (s *CommonStep) takeDraft() *deploy.Draft {
	v, ok := s.deps.Store.Take(DraftKey)
	if !ok {
		return nil
	}
	d, ok := v.(*deploy.Draft)
	if !ok || d == nil {
		s.log.Warn("ignoring draft handoff", zap.Error(fmt.Errorf("%w: %T", databus.ErrWrongType, v)))
		return nil
	}
	d.FormatHealthChecker()
	s.log.Debug("resumed draft", zap.String("draft", d.ID))
	return d
}

// Ready reports whether Enter completed without redirecting.
func (s *CommonStep) Ready() bool { return s.ready }

// BootstrapClusters returns the cluster load to run when the draft has no
// clusters yet. It hands out the job at most once per Enter.
func (s *CommonStep) BootstrapClusters() (ClusterJob, bool) {
	if !s.ready || s.clusterIssued || s.DeployIns.ClusterList.Len() > 0 {
		return nil, false
	}
	s.clusterIssued = true
	s.Loadings.Start(LoadingClusters)
	return s.DeployIns.ClusterJob(), true
}

// ClustersLoaded applies the result of a cluster or node job.
func (s *CommonStep) ClustersLoaded(snap deploy.ClusterSnapshot, err error) error {
	s.Loadings.Finish(LoadingClusters)
	if err != nil {
		s.log.Error("cluster load failed", zap.Error(err))
		return err
	}
	s.DeployIns.ApplyClusters(snap)
	s.log.Debug("clusters loaded", zap.Int("clusters", s.DeployIns.ClusterList.Len()), zap.Int("nodes", len(snap.Nodes)))
	return nil
}

// ChangeCluster selects another cluster and returns the job reloading its
// nodes.
func (s *CommonStep) ChangeCluster(id string) (ClusterJob, error) {
	if !s.ready {
		return nil, nil
	}
	if err := s.DeployIns.SelectCluster(id); err != nil {
		return nil, err
	}
	s.Loadings.Start(LoadingClusters)
	return s.DeployIns.NodesJob(id), nil
}

// SelectFocus marks host selection as touched.
func (s *CommonStep) SelectFocus() {
	s.ValidHost = true
}

// FilteredLabels is the label set narrowed by the input buffer.
func (s *CommonStep) FilteredLabels() *deploy.LabelSet {
	if !s.ready {
		return nil
	}
	return deploy.FilterLabels(s.DeployIns.NodeList.LabelsInfo(), s.LabelKey.Key)
}

// LabelKeyDown handles a key press in the label filter. Enter selects the
// first unselected label of filtered and clears the buffer; Backspace on an
// empty input deselects the last selected label in iteration order.
func (s *CommonStep) LabelKeyDown(code KeyCode, input string, filtered *deploy.LabelSet) {
	if !s.ready {
		return
	}
	nodes := s.DeployIns.NodeList
	switch {
	case code == KeyEnter && filtered.Len() > 0:
		for _, l := range filtered.Labels() {
			if l.Selected {
				continue
			}
			nodes.ToggleLabel(l.Key, true)
			s.LabelKey.Key = ""
			return
		}
	case code == KeyBackspace && input == "":
		var last string
		for _, l := range nodes.LabelsInfo().Labels() {
			if l.Selected {
				last = l.Key
			}
		}
		if last != "" {
			nodes.ToggleLabel(last, false)
		}
	}
}

// SetVersionType records the chosen deployment type.
func (s *CommonStep) SetVersionType(vt string) {
	if s.ready {
		s.Config.VersionType = vt
	}
}

func (s *CommonStep) collectionRouteParams() router.Params {
	return router.Params{ParamID: s.CollectionInfo.CollectionID, ParamName: s.CollectionInfo.CollectionName}
}

func (s *CommonStep) collectionParams() router.Params {
	return router.Params{
		ParamCollectionID:   s.CollectionInfo.CollectionID,
		ParamCollectionName: s.CollectionInfo.CollectionName,
	}
}

// Cancel goes back to the collection's deployment list.
func (s *CommonStep) Cancel() {
	if !s.ready {
		return
	}
	s.deps.Nav.Go(router.DeployManage, s.collectionRouteParams())
}

// ToNext hands the draft to the next page and routes by version type.
func (s *CommonStep) ToNext() {
	if !s.ready {
		return
	}
	s.deps.Store.Set(DraftKey, s.DeployIns)
	if s.Config.VersionType == deploy.VersionTypeCustom {
		s.deps.Nav.Go(router.CreateDeployImage, s.collectionParams())
		return
	}
	s.deps.Nav.Go(router.CreateDeployRaw, s.collectionParams())
}
