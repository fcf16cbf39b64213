package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/bootstrap"
	"github.com/at-ishikawa/workoutlog/internal/config"
	"github.com/at-ishikawa/workoutlog/internal/dashboard"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	"github.com/at-ishikawa/workoutlog/internal/pdf"
	"github.com/at-ishikawa/workoutlog/internal/server"
)

func newDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show, serve or export the workout dashboard",
	}
	cmd.AddCommand(
		newDashboardShowCommand(),
		newDashboardServeCommand(),
		newDashboardExportCommand(),
	)
	return cmd
}

func newLoader(cfg *config.Config, client *httpclient.Client) *dashboard.Loader {
	return dashboard.NewLoader(client, cfg.API.BaseURL, cfg.Dashboard.RecentDays, cfg.Dashboard.LogPath, nil)
}

func newDashboardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(cfg *config.Config, client *httpclient.Client) error {
				view := newLoader(cfg, client).Load(cmd.Context())
				if err := dashboard.WriteTerminal(cmd.OutOrStdout(), view); err != nil {
					return fmt.Errorf("dashboard.WriteTerminal() > %w", err)
				}
				if view.Failed() {
					return fmt.Errorf("failed to load the dashboard from %s", cfg.API.BaseURL)
				}
				return nil
			})
		},
	}
}

func newDashboardServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and the log pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Dashboard.Address = addr
			}

			app := bootstrap.New(bootstrap.DefaultShutdownTimeout)
			registry := metrics.NewRegistry()
			manager := metrics.NewManager("server", registry)
			client, err := newAPIClient(cfg, manager)
			if err != nil {
				return err
			}
			app.OnShutdown("api client", func(ctx context.Context) error {
				return client.Close()
			})

			handler, err := server.NewHandler(client, cfg, manager)
			if err != nil {
				_ = client.Close()
				return fmt.Errorf("server.NewHandler() > %w", err)
			}

			return app.Run(cmd.Context(), func(ctx context.Context) error {
				listener, err := net.Listen("tcp", cfg.Dashboard.Address)
				if err != nil {
					return fmt.Errorf("net.Listen(%s) > %w", cfg.Dashboard.Address, err)
				}
				return server.Serve(ctx, listener, server.RouterSetup(handler, manager, registry))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address. Defaults to dashboard.address")
	return cmd
}

func newDashboardExportCommand() *cobra.Command {
	var output string
	var generatePDF bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard as a Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filepath.Ext(output) != ".md" {
				return fmt.Errorf("--output must be a .md file: %s", output)
			}

			return withClient(func(cfg *config.Config, client *httpclient.Client) error {
				renderer, err := dashboard.NewMarkdownRenderer(cfg.Templates.DashboardMarkdownTemplate)
				if err != nil {
					return fmt.Errorf("dashboard.NewMarkdownRenderer() > %w", err)
				}

				view := newLoader(cfg, client).Load(cmd.Context())
				var content bytes.Buffer
				if err := renderer.Render(&content, view); err != nil {
					return fmt.Errorf("renderer.Render() > %w", err)
				}
				if err := os.WriteFile(output, content.Bytes(), 0644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Markdown written to %s\n", output); err != nil {
					return err
				}

				if generatePDF {
					pdfPath, err := pdf.ConvertMarkdownToPDF(output)
					if err != nil {
						return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath); err != nil {
						return err
					}
				}

				if view.Failed() {
					return fmt.Errorf("failed to load the dashboard from %s", cfg.API.BaseURL)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Markdown file to write")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the Markdown report into a PDF next to it")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
