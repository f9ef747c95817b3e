package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RodCinelli/gestao-engparente/internal/app"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "engparente",
		Short:         "Construction back office API with realtime updates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serveCmd(), migrateCmd(), createDefaultUserCmd(), seedCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			// New migrates on open.
			a, err := app.New(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Log.Info("Migration complete", "driver", cfg.DBDriver)
			return nil
		},
	}
}

func createDefaultUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-default-user",
		Short: "Create the default development user if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.Close()
			created, err := a.Services.Auth.EnsureDefaultUser(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Default user %q created\n", services.DefaultUsername)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Default user %q already exists\n", services.DefaultUsername)
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load departments, constructions, sectors and categories from YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.Close()
			rep, err := a.Services.Seed.Seed(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d departments, %d constructions, %d sectors, %d categories\n",
				rep.Departments, rep.Constructions, rep.Sectors, rep.Categories)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the seed YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
