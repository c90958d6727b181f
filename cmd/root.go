/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/database"
	_ "github.com/dataforge-db/dataforge/internal/database/mysql"
	_ "github.com/dataforge-db/dataforge/internal/database/postgres"
	_ "github.com/dataforge-db/dataforge/internal/database/sqlite"
	_ "github.com/dataforge-db/dataforge/internal/database/sqlserver"
	"github.com/dataforge-db/dataforge/internal/seeder"
)

var (
	verbose     bool
	sampleLimit int

	// Database connection flags
	dialect                        string
	host                           string
	port                           int
	username                       string
	password                       string
	dbName                         string
	sslMode                        string
	dbFile                         string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dataforge",
	Short: "A tool to seed relational databases with realistic test data",
	Long: `dataforge connects to a database, reflects its schema, and fills tables
with generated rows. Foreign keys are resolved against already-seeded parent
tables, and whole schemas are seeded in dependency order.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig initializes database configuration using command flags,
// falling back to a .env file and environment variables for credentials.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if password == "" {
		password = os.Getenv("DATAFORGE_DB_PASSWORD")
	}

	cfg := config.GetConfig()
	dbCfg := cfg.Database

	if cmd != nil {
		dbCfg.Dialect = dialect
		dbCfg.Host = host
		dbCfg.Port = port
		dbCfg.User = username
		dbCfg.Password = password
		dbCfg.DBName = dbName
		dbCfg.SSLMode = sslMode
		dbCfg.FilePath = dbFile
		dbCfg.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
		dbCfg.UsePrivateIP = cloudSQLUsePrivateIP
	}
	if sampleLimit > 0 {
		cfg.Settings.SampleLimit = sampleLimit
	}

	cfg.Database = dbCfg
	database.SetConfig(&dbCfg)
	config.SetConfig(cfg)

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func validateDialect(dialect string) error {
	supportedDialects := []string{"postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver", "cloudsqlsqlserver", "sqlite", "sqlite3"}
	isValidDialect := false
	for _, supportedDialect := range supportedDialects {
		if dialect == supportedDialect {
			isValidDialect = true
			break
		}
	}
	if !isValidDialect {
		return fmt.Errorf("unsupported dialect: %s (only %s are supported)", dialect, strings.Join(supportedDialects, ", "))
	}
	return nil
}

func setupDatabase() (*database.DB, error) {
	dbConfig := database.GetConfig()
	if dbConfig == nil {
		return nil, fmt.Errorf("database config is not initialized")
	}
	db, err := database.New(*dbConfig)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// newSeeder builds a seeding service over an open database handle, honoring
// the global settings in effect.
func newSeeder(db *database.DB) *seeder.Service {
	settings := config.GetConfig().Settings
	return seeder.NewService(db,
		seeder.WithLogger(logger),
		seeder.WithMaxRows(settings.MaxCount),
		seeder.WithSampleLimit(settings.SampleLimit),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (development) logging")
	rootCmd.PersistentFlags().IntVar(&sampleLimit, "sample-limit", 0, "Maximum parent keys sampled per foreign key (defaults to 100)")

	// Database connection flags
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", fmt.Sprintf("Database dialect (%s) - MANDATORY", strings.Join([]string{"postgres", "mysql", "sqlserver", "sqlite", "cloudsqlpostgres", "cloudsqlmysql", "cloudsqlsqlserver"}, ", ")))
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Database port")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password (or DATAFORGE_DB_PASSWORD env var)")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name")
	rootCmd.PersistentFlags().StringVar(&sslMode, "sslmode", "disable", "SSL mode (postgres)")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db-file", "", "Database file path (sqlite)")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection (Cloud SQL)")

	// Add subcommands
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(seedAllCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(applyCmd)
}
