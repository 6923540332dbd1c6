// Command pulsarsql inspects the SQL-facing view of a Pulsar cluster:
// schemas (tenant/namespace pairs), tables (topics), and columns.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/streambridge/pulsarsql/pkg/admin"
	"github.com/streambridge/pulsarsql/pkg/catalog"
	"github.com/streambridge/pulsarsql/pkg/config"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pulsarsql",
	Short: "pulsarsql maps a Pulsar topic catalog onto a SQL catalog",
	Long:  `pulsarsql exposes tenants/namespaces as schemas, topics as tables, and registered topic schemas as typed columns.`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.Version)
			return
		}
		cmd.Help()
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schema names (tenant/namespace pairs)",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := newCatalog().ListSchemaNames(context.Background())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables <schema>",
	Short: "List tables (logical topics) in a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := newCatalog().ListTables(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, table := range tables {
			fmt.Println(table.Table)
		}
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <schema> <table>",
	Short: "Show the columns of a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newCatalog()
		ctx := context.Background()
		h := c.GetTableHandle(ctx, args[0], args[1])
		md, err := c.GetTableMetadata(ctx, h)
		if err != nil {
			return err
		}
		for _, col := range md.Columns {
			line := fmt.Sprintf("%s\t%s", col.Name, col.Type)
			if col.Comment != "" {
				line += "\t" + col.Comment
			}
			fmt.Println(line)
		}
		return nil
	},
}

func newCatalog() *catalog.Catalog {
	client := admin.NewClient(cfg.WebServiceURL,
		admin.WithLogger(logger),
		admin.WithMaxRetries(cfg.MaxRetries),
		admin.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	return catalog.New(cfg.ConnectorID, client, client, client,
		catalog.WithLogger(logger),
		catalog.WithNamespaceDelimiter(cfg.NamespaceDelimiterRewrite),
	)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pulsarsql.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "L", "info", "log at this level (debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version number")

	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(describeCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	if logger, err = zcfg.Build(); err != nil {
		logger = zap.NewNop()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
