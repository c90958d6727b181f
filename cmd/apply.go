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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/database"
	"github.com/dataforge-db/dataforge/internal/seeder"
	"github.com/dataforge-db/dataforge/internal/utils"
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply <config-file>",
	Short: "Seed tables as described by a dataforge.yml configuration file",
	Long: `Loads a YAML configuration file, connects to the database it describes, and
seeds every configured table with its own row count, locale and custom values.
Tables are processed in dependency order regardless of their order in the
file.`,
	Example:           `./dataforge apply dataforge.yml --yes`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if len(cfg.Tables) == 0 {
		return fmt.Errorf("configuration file %s has no table sections", args[0])
	}
	if err := validateDialect(cfg.Database.Dialect); err != nil {
		return err
	}

	// The configuration file wins over connection flags for this command.
	config.SetConfig(cfg)
	database.SetConfig(&cfg.Database)

	randomSeed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	assumeYes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	if !assumeYes && !utils.ConfirmAction(fmt.Sprintf("About to seed %d table(s) in database '%s' (%s)", len(cfg.Tables), cfg.Database.DBName, cfg.Database.Dialect)) {
		fmt.Println("Aborted.")
		return nil
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := newSeeder(db)
	order, err := svc.TableOrder()
	if err != nil {
		return err
	}

	var failed int
	seen := make(map[string]bool, len(cfg.Tables))
	for _, table := range order {
		tableCfg, ok := cfg.Tables[table]
		if !ok {
			continue
		}
		seen[table] = true

		count := tableCfg.Count
		if count == 0 {
			count = cfg.Settings.DefaultCount
		}
		locale := tableCfg.Locale
		if locale == "" {
			locale = cfg.Settings.DefaultLocale
		}

		report, err := svc.SeedTable(cmd.Context(), seeder.Request{
			Table:     table,
			Count:     count,
			Locale:    locale,
			Seed:      randomSeed,
			Overrides: seeder.Overrides(tableCfg.CustomValues),
		})
		if err != nil {
			failed++
			color.Red(report.Outcome())
			continue
		}
		color.Green(report.Outcome())
	}

	for table := range cfg.Tables {
		if !seen[table] {
			failed++
			color.Red("Error seeding table '%s': table not found in database schema", table)
		}
	}

	if failed > 0 {
		return fmt.Errorf("apply completed with %d failed table(s)", failed)
	}
	color.Green("All %d configured table(s) seeded successfully", len(cfg.Tables))
	return nil
}

func init() {
	applyCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output (0 = random)")
	applyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
