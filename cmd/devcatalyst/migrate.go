package main

import (
	"github.com/spf13/cobra"
)

// migrateCmd creates the admin session table
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the admin session table",
	Long:  `Apply the session store schema to the database selected by SESSION_STORE. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		db, _, err := openSessionStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("session store migrated", "store", cfg.SessionStore)
		return nil
	},
}

// pruneSessionsCmd deletes expired and revoked admin sessions
var pruneSessionsCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired and revoked admin sessions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		n, err := a.auth.Prune(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("pruned admin sessions", "count", n)
		return nil
	},
}
