package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/config"
	"github.com/edupointlabs/edupoint/internal/contract"
	"github.com/edupointlabs/edupoint/internal/crediting"
	"github.com/edupointlabs/edupoint/internal/enrollment"
	"github.com/edupointlabs/edupoint/internal/migration"
	"github.com/edupointlabs/edupoint/internal/observability"
	"github.com/edupointlabs/edupoint/internal/payroll"
	"github.com/edupointlabs/edupoint/internal/rateconfig"
	"github.com/edupointlabs/edupoint/internal/roster"
	"github.com/edupointlabs/edupoint/internal/seed"
	"github.com/edupointlabs/edupoint/internal/server"
	"github.com/edupointlabs/edupoint/internal/student"
	"github.com/edupointlabs/edupoint/internal/worksession"
	"github.com/edupointlabs/edupoint/pkg/db"

	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "edupoint",
		Short: "Edupoint tuition ledger & compensation engine",
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ledger API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func registerSnowflake(cfg *config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		crediting.Module,
		contract.Module,
		student.Module,
		roster.Module,
		worksession.Module,
		payroll.Module,
		rateconfig.Module,
		enrollment.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(cfg *config.Config, conn *gorm.DB, node *snowflake.Node) error {
			if cfg.SeedDemoData {
				return seed.EnsureDemoData(conn, node)
			}
			return nil
		}),
		fx.Invoke(func(s *server.Server) { s.RegisterRoutes() }),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}
