package main

import (
	"context"
	"fmt"

	"callsheet/internal/config"
	"callsheet/internal/logger"
	"callsheet/internal/store"
	"callsheet/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session is the persisted workspace opened for one command.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     store.SnapshotStore
	workspace *workspace.Workspace
}

func (s *session) Close() {
	s.store.Close()
	s.logger.Sync()
}

type openFunc func(ctx context.Context) (*session, error)

func newRootCmd() *cobra.Command {
	var verbose bool

	open := func(ctx context.Context) (*session, error) {
		cfg := config.LoadConfig()
		level := "warn"
		if verbose {
			level = "debug"
		}
		zl, err := logger.New(level, "console", "")
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		return openSession(ctx, cfg, zl)
	}

	root := &cobra.Command{
		Use:           "callsheet",
		Short:         "Work through a call list imported from a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newImportCmd(open),
		newListCmd(open),
		newAddCmd(open),
		newUpdateCmd(open),
		newRemoveCmd(open),
		newExportCmd(open),
		newResetCmd(open),
		newMigrateCmd(open),
	)
	return root
}

func openSession(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*session, error) {
	snapshots, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	w := workspace.New()
	store.NewMirror(snapshots, zl).Attach(ctx, w)
	return &session{cfg: cfg, logger: zl, store: snapshots, workspace: w}, nil
}
