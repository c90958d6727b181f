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
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataforge-db/dataforge/internal/config"
	"github.com/dataforge-db/dataforge/internal/seeder"
	"github.com/dataforge-db/dataforge/internal/utils"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed <table>",
	Short: "Seed a single table with generated rows",
	Long: `Connects to the database, resolves the table's columns and foreign keys,
and inserts generated rows. Foreign-key columns are filled with keys sampled
from the referenced tables, which must already contain data.`,
	Example:           `./dataforge seed users --dialect postgres --host localhost --port 5432 --username user --database mydb --count 100 --custom '{"role": ["admin", "user"]}'`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := validateDialect(dialect); err != nil {
		return err
	}

	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	locale := cmd.Flag("locale").Value.String()
	randomSeed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	overrides, err := utils.ParseCustomValues(cmd.Flag("custom").Value.String())
	if err != nil {
		return err
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := newSeeder(db).SeedTable(cmd.Context(), seeder.Request{
		Table:     args[0],
		Count:     count,
		Locale:    locale,
		Seed:      randomSeed,
		Overrides: overrides,
	})
	if err != nil {
		color.Red(report.Outcome())
		return err
	}
	color.Green(report.Outcome())
	return nil
}

func init() {
	defaults := config.GetConfig().Settings

	seedCmd.Flags().IntP("count", "n", defaults.DefaultCount, "Number of rows to insert")
	seedCmd.Flags().String("locale", defaults.DefaultLocale, "Locale identifier for generated values")
	seedCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output (0 = random)")
	seedCmd.Flags().String("custom", "", `Custom values as JSON, e.g. '{"role": ["admin", "user"]}'`)
}
