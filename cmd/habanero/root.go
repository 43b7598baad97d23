package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chillisoft/habanero"
	"github.com/chillisoft/habanero/logger"
	"github.com/chillisoft/habanero/schema"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type options struct {
	classDefs string
	dialect   string
	logger    string
	logLevel  string
	driver    string
	dsn       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "habanero",
		Short:         "Inspect class definitions and the SQL generated for them",
		Long:          `habanero loads YAML class definitions and prints their inheritance chains, the statements that persist an object and the tables they need.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.classDefs, "classdefs", "c", "", "YAML class definitions file")
	flags.StringVar(&opts.dialect, "dialect", "common", "SQL dialect: common, mysql, postgres, sqlite3, mssql or oracle")
	flags.StringVar(&opts.logger, "logger", "std", "Logger: std, logrus, zerolog or zap")
	flags.StringVar(&opts.logLevel, "log-level", logger.DefaultLogLevel.String(), "Log level: silent, error, warn or info")
	_ = rootCmd.MarkPersistentFlagRequired("classdefs")

	rootCmd.AddCommand(
		newDescribeCmd(opts),
		newSQLCmd(opts),
		newDDLCmd(opts),
		newLookupCmd(opts),
	)
	return rootCmd
}

func addDBFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.driver, "driver", "sqlite", "database/sql driver: sqlite, postgres, pgx or mysql")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Data source name")
}

func (o *options) newLogger() (logger.Interface, error) {
	config := logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logger.ParseLevel(o.logLevel),
	}

	switch o.logger {
	case "", "std":
		return logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), config), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(os.Stderr)
		return logger.NewLogrusLogger(l, config), nil
	case "zerolog":
		return logger.NewZerologConsoleLogger(config), nil
	case "zap":
		return logger.NewZapProductionLogger(config)
	}
	return nil, fmt.Errorf("unknown logger %q", o.logger)
}

func (o *options) catalog() (*schema.Catalog, error) {
	defs, err := schema.LoadYAMLFile(o.classDefs)
	if err != nil {
		return nil, err
	}
	catalog := schema.NewCatalog()
	if err := catalog.Add(defs...); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (o *options) sqlDB() (*sql.DB, error) {
	if o.dsn == "" {
		return nil, fmt.Errorf("--dsn is required")
	}
	return sql.Open(o.driver, o.dsn)
}

// open returns a session over the class definitions, db may be nil
func (o *options) open(db *sql.DB) (*habanero.DB, error) {
	catalog, err := o.catalog()
	if err != nil {
		return nil, err
	}
	l, err := o.newLogger()
	if err != nil {
		return nil, err
	}
	return habanero.Open(db, catalog, habanero.WithDialectName(o.dialect), habanero.WithLogger(l))
}
