package main

import (
	"fmt"

	"callsheet/internal/store"

	"github.com/spf13/cobra"
)

func newMigrateCmd(open openFunc) *cobra.Command {
	var to, dbPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the saved workspace into another store backend",
		Long: "Copies the snapshot from the configured STORE_DRIVER into the backend named by --to.\n" +
			"The target reuses the DB_* and REDIS_* settings of the environment.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if to == s.cfg.StoreDriver && (to != "sqlite" || dbPath == "" || dbPath == s.cfg.DBPath) {
				return fmt.Errorf("source and target are both %s", to)
			}

			snap, err := s.store.Load(ctx)
			if err != nil {
				return fmt.Errorf("read source snapshot: %w", err)
			}
			if snap == nil || len(snap.Contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate")
				return nil
			}

			targetCfg := *s.cfg
			targetCfg.StoreDriver = to
			if dbPath != "" {
				targetCfg.DBPath = dbPath
			}
			target, err := store.Open(ctx, &targetCfg)
			if err != nil {
				return fmt.Errorf("open target: %w", err)
			}
			defer target.Close()

			if err := target.Save(ctx, *snap); err != nil {
				return fmt.Errorf("write target snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d contacts from %s to %s\n",
				len(snap.Contacts), s.cfg.StoreDriver, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target driver: sqlite, postgres or redis")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "sqlite file for the target (defaults to DB_PATH)")
	cmd.MarkFlagRequired("to")
	return cmd
}
