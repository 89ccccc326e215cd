package wizard

import "sort"

// Loadings tracks named in-flight operations so a page can show a loading
// indicator while any of them runs.
type Loadings struct {
	active map[string]bool
}

// NewLoadings returns an empty tracker.
func NewLoadings() *Loadings {
	return &Loadings{active: map[string]bool{}}
}

// Start marks name as running.
func (l *Loadings) Start(name string) {
	if l.active == nil {
		l.active = map[string]bool{}
	}
	l.active[name] = true
}

// Finish marks name as done.
func (l *Loadings) Finish(name string) {
	delete(l.active, name)
}

// IsLoading reports whether name is running.
func (l *Loadings) IsLoading(name string) bool {
	return l.active[name]
}

// Any reports whether anything is running.
func (l *Loadings) Any() bool {
	return len(l.active) > 0
}

// Names returns the running operations, sorted.
func (l *Loadings) Names() []string {
	out := make([]string, 0, len(l.active))
	for n := range l.active {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
