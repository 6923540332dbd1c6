package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/streambridge/pulsarsql/pkg/catalog"
	"github.com/streambridge/pulsarsql/pkg/metrics"
)

var (
	prometheusEnabled bool
	prometheusAddr    string
	scanInterval      time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Periodically scan the catalog and serve Prometheus metrics",
	Long:  `Scans every schema's tables and columns on an interval, exporting operation and skipped-topic counters for broker monitoring.`,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("metrics-addr") && cfg.MetricsAddr != "" {
		prometheusAddr = cfg.MetricsAddr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	if prometheusEnabled {
		metrics.StartPrometheusServer(ctx, &wg, &metrics.PromServerOpts{Addr: prometheusAddr})
	}

	c := newCatalog()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(scanInterval)
		defer ticker.Stop()
		scanCatalog(ctx, c)
		for {
			select {
			case <-ticker.C:
				scanCatalog(ctx, c)
			case <-ctx.Done():
				return
			}
		}
	}()

	<-sigChan
	logger.Info("received termination signal, shutting down")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}
	return nil
}

// scanCatalog walks every schema once. Broken topics are already
// tolerated (and counted) by ListTableColumns itself.
func scanCatalog(ctx context.Context, c *catalog.Catalog) {
	schemas, err := c.ListSchemaNames(ctx)
	if err != nil {
		logger.Error("list schemas failed", zap.Error(err))
		return
	}
	for _, name := range schemas {
		if ctx.Err() != nil {
			return
		}
		tables, err := c.ListTableColumns(ctx, catalog.Prefix{Schema: name})
		if err != nil {
			logger.Error("scan schema failed", zap.String("schema", name), zap.Error(err))
			continue
		}
		logger.Debug("scanned schema", zap.String("schema", name), zap.Int("tables", len(tables)))
	}
}

func init() {
	exportCmd.Flags().BoolVar(&prometheusEnabled, "metrics", true, "Enable Prometheus metrics server")
	exportCmd.Flags().StringVar(&prometheusAddr, "metrics-addr", ":9100", "Prometheus metrics server address")
	exportCmd.Flags().DurationVar(&scanInterval, "interval", time.Minute, "Catalog scan interval")

	rootCmd.AddCommand(exportCmd)
}
