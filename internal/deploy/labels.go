package deploy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Label is one key=value pair found on at least one node.
type Label struct {
	Key      string
	Selected bool
	Nodes    []string
}

// Pair splits the label name into its key and value.
func (l *Label) Pair() (string, string) {
	k, v, _ := strings.Cut(l.Key, "=")
	return k, v
}

// LabelSet is an ordered label -> info map. Filtered views share *Label
// values with the set they came from, so selection state is always live.
type LabelSet struct {
	order []*Label
	index map[string]*Label
}

func newLabelSet() *LabelSet {
	return &LabelSet{index: map[string]*Label{}}
}

func (s *LabelSet) add(l *Label) {
	s.order = append(s.order, l)
	s.index[l.Key] = l
}

func (s *LabelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Labels returns the labels in iteration order.
func (s *LabelSet) Labels() []*Label {
	if s == nil {
		return nil
	}
	return append([]*Label(nil), s.order...)
}

func (s *LabelSet) Get(key string) (*Label, bool) {
	if s == nil {
		return nil, false
	}
	l, ok := s.index[key]
	return l, ok
}

func labelName(k, v string) string {
	return k + "=" + v
}

// buildLabelSet indexes node labels, sorted by name. Pairs that are not
// valid Kubernetes labels are skipped since they could never be used in a
// node selector.
func buildLabelSet(nodes []Node) *LabelSet {
	byName := map[string]*Label{}
	for _, n := range nodes {
		for k, v := range n.Labels {
			if len(validation.IsQualifiedName(k)) > 0 || len(validation.IsValidLabelValue(v)) > 0 {
				continue
			}
			name := labelName(k, v)
			l, ok := byName[name]
			if !ok {
				l = &Label{Key: name}
				byName[name] = l
			}
			l.Nodes = append(l.Nodes, n.Name)
		}
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	set := newLabelSet()
	for _, name := range names {
		l := byName[name]
		sort.Strings(l.Nodes)
		set.add(l)
	}
	return set
}

// FilterLabels returns the labels whose name contains query
// (case-insensitive), or is one edit away from it for queries of three or
// more characters. An empty query matches everything. Order is kept.
func FilterLabels(set *LabelSet, query string) *LabelSet {
	out := newLabelSet()
	q := strings.ToLower(strings.TrimSpace(query))
	for _, l := range set.Labels() {
		if q == "" || labelMatches(l, q) {
			out.add(l)
		}
	}
	return out
}

func labelMatches(l *Label, q string) bool {
	name := strings.ToLower(l.Key)
	if strings.Contains(name, q) {
		return true
	}
	if len(q) < 3 {
		return false
	}
	k, v := l.Pair()
	for _, part := range []string{name, strings.ToLower(k), strings.ToLower(v)} {
		if levenshtein.ComputeDistance(part, q) <= 1 {
			return true
		}
	}
	return false
}

// NodeList is the node-placement collaborator of a draft: the nodes of the
// chosen cluster and the label index built from them.
type NodeList struct {
	nodes  []Node
	labels *LabelSet
}

func NewNodeList(nodes []Node) *NodeList {
	nl := &NodeList{}
	nl.SetNodes(nodes)
	return nl
}

// SetNodes replaces the node set. Labels that were selected and still exist
// stay selected.
func (nl *NodeList) SetNodes(nodes []Node) {
	prev := nl.labels
	nl.nodes = append([]Node(nil), nodes...)
	nl.labels = buildLabelSet(nl.nodes)
	for _, l := range prev.Labels() {
		if !l.Selected {
			continue
		}
		if cur, ok := nl.labels.Get(l.Key); ok {
			cur.Selected = true
		}
	}
}

func (nl *NodeList) Nodes() []Node {
	return append([]Node(nil), nl.nodes...)
}

// LabelsInfo is the full ordered label set.
func (nl *NodeList) LabelsInfo() *LabelSet {
	return nl.labels
}

// ToggleLabel sets the selection of one label. Unknown labels are ignored.
func (nl *NodeList) ToggleLabel(key string, selected bool) {
	if l, ok := nl.labels.Get(key); ok {
		l.Selected = selected
	}
}

// SelectedLabels returns the selected label names in iteration order.
func (nl *NodeList) SelectedLabels() []string {
	var out []string
	for _, l := range nl.labels.Labels() {
		if l.Selected {
			out = append(out, l.Key)
		}
	}
	return out
}

// NodeSelector returns the selected values per label key. Values of one
// key are alternatives: a node carrying any of them matches.
func (nl *NodeList) NodeSelector() map[string][]string {
	out := map[string][]string{}
	for _, l := range nl.labels.Labels() {
		if l.Selected {
			k, v := l.Pair()
			out[k] = append(out[k], v)
		}
	}
	return out
}

// Selector builds the label selector for the current selection: one "in"
// requirement per key.
func (nl *NodeList) Selector() (labels.Selector, error) {
	sel := labels.NewSelector()
	for k, values := range nl.NodeSelector() {
		req, err := labels.NewRequirement(k, selection.In, values)
		if err != nil {
			return nil, fmt.Errorf("label %s: %w", k, err)
		}
		sel = sel.Add(*req)
	}
	return sel, nil
}

// MatchingNodes returns the nodes satisfying every selected key. With no
// selection every node matches.
func (nl *NodeList) MatchingNodes() []Node {
	sel, err := nl.Selector()
	if err != nil {
		return nil
	}
	var out []Node
	for _, n := range nl.nodes {
		if sel.Matches(labels.Set(n.Labels)) {
			out = append(out, n)
		}
	}
	return out
}
