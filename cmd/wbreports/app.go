package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"wbreports/internal/delivery"
	"wbreports/internal/domain"
	"wbreports/internal/infrastructure"
	"wbreports/internal/usecase"
	"wbreports/pkg/config"
	"wbreports/pkg/logger"
	"wbreports/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const pushJob = "wbreports"

// app holds the dependencies shared by all subcommands
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	exporter *infrastructure.XLSXExporter
	service  *usecase.ReportService

	reportsDir string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "wbreports",
		Short:         "Export Wildberries statistics to spreadsheets",
		Long:          "wbreports fetches orders, sales or campaign keyword statistics from the Wildberries API, renames fields to display names and writes an .xlsx report.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return a.init()
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	cmd.PersistentFlags().StringVar(&a.reportsDir, "reports-dir", "", "Directory for generated reports (overrides REPORTS_DIR)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	if err := cmd.MarkPersistentFlagDirname("reports-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark reports-dir flag as directory: %v", err))
	}

	cmd.AddCommand(a.ordersCmd(), a.salesCmd(), a.keywordsCmd(), a.serveCmd())
	return cmd
}

// init loads configuration and wires the pipeline. A missing token stops the
// run before any request is made.
func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.reportsDir != "" {
		cfg.Reports.Dir = a.reportsDir
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewWithOutput(cfg.Logging.Level, os.Stderr)
	a.metrics = metrics.New()
	a.exporter = infrastructure.NewXLSXExporter(a.log)

	client := infrastructure.NewHTTPClient(infrastructure.HTTPClientConfig{
		StatisticsURL:      cfg.API.StatisticsURL,
		AdvertURL:          cfg.API.AdvertURL,
		Token:              cfg.API.Token,
		AuthScheme:         cfg.API.AuthScheme,
		Timeout:            cfg.API.RequestTimeout,
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
	}, a.log, a.metrics)

	a.service = usecase.NewReportService(client, a.exporter, a.log, a.metrics, cfg.Reports.Dir)
	return nil
}

func (a *app) ordersCmd() *cobra.Command {
	var req domain.OrdersRequest

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Export orders since a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd, func(ctx context.Context) (string, error) {
				return a.service.RunOrders(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.DateFrom, "date", "", "Report date (YYYY-MM-DD)")
	must(cmd.MarkFlagRequired("date"))
	return cmd
}

func (a *app) salesCmd() *cobra.Command {
	var (
		req  domain.SalesRequest
		flag int
	)

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Export sales and returns for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseSalesFlag(flag)
			if err != nil {
				return err
			}
			req.Flag = f

			return a.report(cmd, func(ctx context.Context) (string, error) {
				return a.service.RunSales(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.DateFrom, "date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flag, "flag", int(domain.FlagSameDate), "1: all sales dated --date, 0: sales changed since --date")
	must(cmd.MarkFlagRequired("date"))
	return cmd
}

func (a *app) keywordsCmd() *cobra.Command {
	var req domain.KeywordsRequest

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Export per-keyword statistics of an advertising campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd, func(ctx context.Context) (string, error) {
				return a.service.RunKeywords(ctx, req)
			})
		},
	}

	cmd.Flags().Int64Var(&req.CampaignID, "campaign", 0, "Advertising campaign id")
	cmd.Flags().StringVar(&req.DateFrom, "from", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.DateTo, "to", "", "Period end (YYYY-MM-DD), less than 7 days after --from")
	must(cmd.MarkFlagRequired("campaign"))
	must(cmd.MarkFlagRequired("from"))
	must(cmd.MarkFlagRequired("to"))
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Server.Port
			}
			return a.serve(cmd.Context(), ":"+port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

// report runs one export, prints the written path and pushes metrics when a
// Pushgateway is configured
func (a *app) report(cmd *cobra.Command, run func(context.Context) (string, error)) error {
	path, err := run(cmd.Context())
	a.pushMetrics()
	if err != nil {
		a.log.WithError(err).Error("Report failed")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func (a *app) pushMetrics() {
	if a.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := a.metrics.Push(a.cfg.Metrics.PushgatewayURL, pushJob); err != nil {
		a.log.WithError(err).Warn("Failed to push metrics")
	}
}

func (a *app) serve(ctx context.Context, addr string) error {
	gin.SetMode(gin.ReleaseMode)

	handlers := delivery.NewHTTPHandlers(a.service, a.exporter, a.log)
	router := delivery.NewHTTPRouter(handlers, a.log, a.metrics, a.cfg.API.RequestTimeout+5*time.Second)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", addr).Info("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
