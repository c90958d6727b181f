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
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Visualize the schema's dependency graph",
	Long: `Prints each table with the tables it depends on, in seeding order. With
--levels, groups tables by dependency level instead: level 0 tables have no
dependencies, and each level only references tables on lower levels.`,
	Example:           `./dataforge deps --dialect postgres --host localhost --port 5432 --username user --database mydb --levels`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runDeps,
}

func runDeps(cmd *cobra.Command, args []string) error {
	if err := validateDialect(dialect); err != nil {
		return err
	}

	showLevels, err := cmd.Flags().GetBool("levels")
	if err != nil {
		return err
	}

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := newSeeder(db)

	if showLevels {
		levels, err := svc.DependencyLevels()
		if err != nil {
			return err
		}
		depths := make([]int, 0, len(levels))
		for depth := range levels {
			depths = append(depths, depth)
		}
		sort.Ints(depths)

		fmt.Println("Dependency levels:")
		for _, depth := range depths {
			fmt.Printf("Level %d: %s\n", depth, strings.Join(levels[depth], ", "))
		}
		return nil
	}

	tree, err := svc.DependencyTree()
	if err != nil {
		return err
	}
	fmt.Println(tree)

	selfRefs, err := svc.SelfReferencingTables()
	if err != nil {
		return err
	}
	if len(selfRefs) > 0 {
		fmt.Printf("\nSelf-referencing tables: %s\n", strings.Join(selfRefs, ", "))
	}
	return nil
}

func init() {
	depsCmd.Flags().Bool("levels", false, "Group tables by dependency level")
}
