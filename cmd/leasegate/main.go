package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hartline-properties/leasegate/internal/config"
	"github.com/hartline-properties/leasegate/internal/database"
	"github.com/hartline-properties/leasegate/internal/docstore"
	"github.com/hartline-properties/leasegate/internal/logger"
	"github.com/hartline-properties/leasegate/internal/repository"
)

var composeFile string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "leasegate: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leasegate",
		Short: "leasegate operations CLI",
		Long: `Operational companion to the intake server. Bootstraps the database schema and
the documents bucket, looks up stored applications by id, and manages the local
Postgres + MinIO stack. Every command reads the same LEASEGATE_* environment
(and .env file) as the server itself.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newMigrateCmd(),
		newInitBucketCmd(),
		newGetCmd(),
		newStackCmd(),
	)
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the rental_applications schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := database.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := database.EnsureSchema(ctx, pool); err != nil {
				return err
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}

func newInitBucketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-bucket",
		Short: "Create the documents bucket if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := docstore.New(cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
			if err != nil {
				return err
			}
			if err := store.EnsureBucket(ctx); err != nil {
				return err
			}
			fmt.Printf("bucket %s ready\n", cfg.DocumentsBucket)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <application-id>",
		Short: "Print a stored application as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := database.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			rec, err := repository.NewApplicationRepository(pool).Get(ctx, args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Manage the local Postgres + MinIO compose stack",
	}
	cmd.PersistentFlags().StringVarP(&composeFile, "compose-file", "f", "docker-compose.yml", "Compose file for stack commands")

	up := &cobra.Command{
		Use:   "up [service...]",
		Short: "Start Postgres and MinIO in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compose(cmd.Context(), append([]string{"up", "-d"}, args...)...)
		},
	}

	var removeVolumes bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Stop the stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"down"}
			if removeVolumes {
				composeArgs = append(composeArgs, "-v")
			}
			return compose(cmd.Context(), composeArgs...)
		},
	}
	down.Flags().BoolVarP(&removeVolumes, "volumes", "v", false, "Remove stack volumes")

	var follow bool
	logs := &cobra.Command{
		Use:   "logs [service...]",
		Short: "Tail stack logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			composeArgs := []string{"logs"}
			if follow {
				composeArgs = append(composeArgs, "-f")
			}
			return compose(cmd.Context(), append(composeArgs, args...)...)
		},
	}
	logs.Flags().BoolVarP(&follow, "follow", "f", false, "Stream logs continuously")

	cmd.AddCommand(up, down, logs)
	return cmd
}

func compose(ctx context.Context, args ...string) error {
	execCmd := exec.CommandContext(ctx, "docker", append([]string{"compose", "-f", composeFile}, args...)...)
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.Stdin = os.Stdin
	return execCmd.Run()
}
