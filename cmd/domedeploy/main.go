package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/domedeploy/internal/config"
	"github.com/jask/domedeploy/internal/databus"
	"github.com/jask/domedeploy/internal/database"
	"github.com/jask/domedeploy/internal/database/repository"
	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/logging"
	"github.com/jask/domedeploy/internal/router"
	"github.com/jask/domedeploy/internal/service"
	"github.com/jask/domedeploy/internal/tui"
	"github.com/jask/domedeploy/internal/wizard"
)

type options struct {
	configPath     string
	collectionID   string
	collectionName string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "domedeploy",
		Short:         "Terminal console for creating deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $DOMEDEPLOY_CONFIG or ~/.config/domedeploy/config.toml)")
	f.StringVar(&opts.collectionID, "collection-id", "", "open the new-deployment wizard for this collection id")
	f.StringVar(&opts.collectionName, "collection-name", "", "collection name shown by the wizard")
	cmd.MarkFlagsRequiredTogether("collection-id", "collection-name")
	return cmd
}

// startRoute opens the wizard when a collection was named on the command
// line, otherwise the collection list.
func startRoute(opts options) router.Route {
	if opts.collectionID == "" || opts.collectionName == "" {
		return router.Route{State: router.DeployCollectionManage}
	}
	return router.Route{
		State: router.CreateDeployCommon,
		Params: router.Params{
			wizard.ParamCollectionID:   opts.collectionID,
			wizard.ParamCollectionName: opts.collectionName,
		},
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, syncLog, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer syncLog()

	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	// repositories
	collectionRepo := repository.NewCollectionRepo(db)
	clusterRepo := repository.NewClusterRepo(db)
	nodeRepo := repository.NewNodeRepo(db)

	clusters := &service.ClusterService{
		Clusters: clusterRepo,
		Nodes:    nodeRepo,
		Log:      log.Named("clusters"),
		Timeout:  cfg.Cluster.LoadTimeout,
	}

	start := startRoute(opts)
	log.Info("starting", zap.String("db", cfg.Database.Path), zap.String("route", string(start.State)))

	saveVersionType := func(vt string) error {
		return config.SaveVersionType(opts.configPath, vt)
	}
	app := tui.New(ctx, tui.Deps{
		Collections:     &service.CollectionService{Collections: collectionRepo},
		Factory:         &deploy.Factory{Source: clusters, DefaultVersionType: cfg.UI.DefaultVersionType},
		Bus:             databus.New(),
		Log:             log.Named("tui"),
		SaveVersionType: saveVersionType,
	}, start)

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
