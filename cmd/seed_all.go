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
	"github.com/dataforge-db/dataforge/internal/seeder"
	"github.com/dataforge-db/dataforge/internal/utils"
)

// seedAllCmd represents the seed-all command
var seedAllCmd = &cobra.Command{
	Use:   "seed-all",
	Short: "Seed every table in dependency order",
	Long: `Computes the schema's dependency order and seeds each table in turn, so
parent tables always have rows before their children are filled. A circular
dependency aborts the run before any row is inserted.`,
	Example:           `./dataforge seed-all --dialect postgres --host localhost --port 5432 --username user --database mydb --count 50 --custom '{"users": {"role": ["admin", "user"]}}'`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runSeedAll,
}

func runSeedAll(cmd *cobra.Command, args []string) error {
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
	perTable, err := utils.ParseTableCustomValues(cmd.Flag("custom").Value.String())
	if err != nil {
		return err
	}
	overrides := make(map[string]seeder.Overrides, len(perTable))
	for table, values := range perTable {
		overrides[table] = values
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := newSeeder(db).SeedAll(cmd.Context(), seeder.SchemaRequest{
		Count:     count,
		Locale:    locale,
		Seed:      randomSeed,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	if failed := report.Failed(); failed > 0 {
		color.Red("%d of %d table(s) failed", failed, len(report.Tables))
		return fmt.Errorf("seed-all completed with %d failed table(s)", failed)
	}
	color.Green("All %d table(s) seeded successfully", len(report.Tables))
	return nil
}

func init() {
	defaults := config.GetConfig().Settings

	seedAllCmd.Flags().IntP("count", "n", defaults.DefaultCount, "Number of rows to insert per table")
	seedAllCmd.Flags().String("locale", defaults.DefaultLocale, "Locale identifier for generated values")
	seedAllCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output (0 = random)")
	seedAllCmd.Flags().String("custom", "", `Per-table custom values as JSON, e.g. '{"users": {"role": ["admin"]}}'`)
}
