package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-arcade/edo/internal/engine/bootstrap"
	"github.com/go-arcade/edo/internal/engine/config"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/version"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/5 21:12
 * @file: main.go
 * @description: edo api server entrypoint
 */

var configFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "edo",
		Short:         "Edo property management api server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve,
	}
	root.PersistentFlags().StringVarP(&configFile, "conf", "c", "conf.d/config.toml", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the http api server",
		RunE:  serve,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the well-known roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, db *gorm.DB, access *service.AccessService) error {
				if err := database.AutoMigrate(db); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
				if err := access.SeedRoles(ctx); err != nil {
					return err
				}
				log.Infow("migration finished")
				return nil
			})
		},
	}

	rolesCmd := &cobra.Command{Use: "roles", Short: "Role maintenance"}
	rolesCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete user role bindings whose role no longer exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *gorm.DB, access *service.AccessService) error {
				n, err := access.CleanupBindings(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d orphan role bindings\n", n)
				return nil
			})
		},
	})

	root.AddCommand(serveCmd, migrateCmd, rolesCmd, version.VersionCmd)
	return root
}

func serve(_ *cobra.Command, _ []string) error {
	app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
	if err != nil {
		return err
	}
	bootstrap.Run(app, cleanup)
	return nil
}

// withStore opens the configured database without the http stack.
func withStore(ctx context.Context, fn func(context.Context, *gorm.DB, *service.AccessService) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conf, err := config.LoadConfigFile(configFile)
	if err != nil {
		return err
	}
	if err := log.Init(&conf.Log); err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gdb, err := database.NewDatabase(conf.Database)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(gdb) }()

	db := database.NewGormDB(gdb)
	access := service.NewAccessService(db, nil, repo.NewRepositories(db))
	return fn(ctx, gdb, access)
}
