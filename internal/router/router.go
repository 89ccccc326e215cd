// Package router moves the console between named pages, carrying string
// parameters the way a URL route would.
package router

import "maps"

// State names a page.
type State string

const (
	DeployCollectionManage State = "deployCollectionManage"
	DeployManage           State = "deployManage"
	CreateDeployCommon     State = "createDeployCommon"
	CreateDeployImage      State = "createDeployImage"
	CreateDeployRaw        State = "createDeployRaw"
)

// Params are the route parameters of a page.
type Params map[string]string

// Route is a state plus its parameters.
type Route struct {
	State  State
	Params Params
}

// Param returns the named parameter, "" when absent.
func (r Route) Param(name string) string {
	return r.Params[name]
}

type routeStack struct {
	items []Route
}

func (s *routeStack) push(r Route) {
	s.items = append(s.items, r)
}

func (s *routeStack) pop() (Route, bool) {
	if len(s.items) == 0 {
		return Route{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Router tracks the current route and the routes visited before it.
// Go bumps a sequence number so hosts can tell a navigation happened even
// when the target equals the current route.
type Router struct {
	current Route
	history routeStack
	seq     uint64
}

func New(start Route) *Router {
	return &Router{current: start}
}

// Go navigates to state with a copy of params.
func (r *Router) Go(state State, params Params) {
	if r.current.State != "" {
		r.history.push(r.current)
	}
	r.current = Route{State: state, Params: maps.Clone(params)}
	r.seq++
}

// Back returns to the previous route, if any.
func (r *Router) Back() bool {
	prev, ok := r.history.pop()
	if !ok {
		return false
	}
	r.current = prev
	r.seq++
	return true
}

func (r *Router) Current() Route { return r.current }

// Seq increases on every navigation.
func (r *Router) Seq() uint64 { return r.seq }

// Previous returns the route Back would return to.
func (r *Router) Previous() (Route, bool) {
	if len(r.history.items) == 0 {
		return Route{}, false
	}
	return r.history.items[len(r.history.items)-1], true
}
