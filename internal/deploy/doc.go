// Package deploy holds the in-progress deployment draft that the creation
// wizard builds up page by page.
//
// A Draft is plain data plus the cluster and node-label collaborators the
// wizard pages drive. Loading clusters is split into a job that can run off
// the UI loop (ClusterJob, NodesJob) and an Apply step that must run on it.
package deploy
