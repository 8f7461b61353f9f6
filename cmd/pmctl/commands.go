package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"property-management/internal/assignment"
	"property-management/internal/config"
	"property-management/internal/database"
	"property-management/internal/dto"
	"property-management/internal/logger"
	"property-management/internal/seed"
	"property-management/internal/store"
)

// env is what every command needs once the config is loaded.
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.GormDB
}

func openEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.Logging.Level, ServiceName: "pmctl", Development: true})
	logger.SetGlobal(log)

	db, err := database.NewGormDB(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.db.InitSchema(); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database tables created successfully!")
			return nil
		},
	}
}

func DropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return errors.New("refusing to drop tables without --yes")
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.db.DropSchema(); err != nil {
				return fmt.Errorf("failed to drop tables: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tables dropped successfully")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "confirm dropping every table")
	return cmd
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample properties and tenants that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.db.InitSchema(); err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), store.New(e.db), e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed complete: %d properties and %d tenants created\n",
				res.PropertiesCreated, res.TenantsCreated)
			return nil
		},
	}
}

func AssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <tenant-id> <property-id>",
		Short: "Assign a tenant to a property and create the lease",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseID("tenant-id", args[0])
			if err != nil {
				return err
			}
			propertyID, err := parseID("property-id", args[1])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			svc := assignment.NewService(store.New(e.db),
				assignment.WithAllowActiveTenantReassign(e.cfg.Assignment.AllowActiveTenantReassign),
				assignment.WithLogger(e.log))

			res, err := svc.AssignTenantToProperty(cmd.Context(), tenantID, propertyID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.NewAssignmentResponse(res))
		},
	}
}

func parseID(name, raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(n), nil
}
