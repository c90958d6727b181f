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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:               "schema",
	Short:             "List the tables in the connected database",
	Example:           `./dataforge schema --dialect postgres --host localhost --port 5432 --username user --database mydb --format json`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := validateDialect(dialect); err != nil {
		return err
	}

	format := cmd.Flag("format").Value.String()
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format: %s (only table, json are supported)", format)
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.ListTables()
	if err != nil {
		return err
	}

	if format == "json" {
		out, err := json.MarshalIndent(tables, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Tables (%d):\n", len(tables))
	for _, table := range tables {
		fmt.Printf("  %s\n", table)
	}
	return nil
}

func init() {
	schemaCmd.Flags().String("format", "table", "Output format (table, json)")
}
