package tui

import (
	"github.com/jask/domedeploy/internal/database/repository"
	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/wizard"
)

type statusMsg string

type errMsg struct{ error }

type collectionsMsg []repository.Collection

// clustersMsg carries a finished cluster or node load. The draft is kept so
// the result lands even if the user already moved on to another page.
type clustersMsg struct {
	step  *wizard.CommonStep
	draft *deploy.Draft
	snap  deploy.ClusterSnapshot
	err   error
}
