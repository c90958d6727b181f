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

	"github.com/spf13/cobra"
)

// orderCmd represents the order command
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the dependency order tables should be seeded in",
	Long: `Reflects the schema's foreign keys and prints a topological order: every
table appears after all tables it depends on. Fails if the schema contains a
circular dependency, naming the cycle.`,
	Example:           `./dataforge order --dialect postgres --host localhost --port 5432 --username user --database mydb`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runOrder,
}

func runOrder(cmd *cobra.Command, args []string) error {
	if err := validateDialect(dialect); err != nil {
		return err
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	order, err := newSeeder(db).TableOrder()
	if err != nil {
		return err
	}

	fmt.Println("Seeding order:")
	for i, table := range order {
		fmt.Printf("%d. %s\n", i+1, table)
	}
	return nil
}
