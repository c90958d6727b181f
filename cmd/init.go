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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataforge-db/dataforge/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write an example dataforge.yml configuration file",
	Example: `./dataforge init --out dataforge.yml`,
	RunE:    runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cmd.Flag("out").Value.String()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}

	if err := config.WriteExample(path); err != nil {
		return err
	}
	color.Green("Example configuration written to %s", path)
	return nil
}

func init() {
	initCmd.Flags().StringP("out", "o", "dataforge.yml", "Path to write the example configuration to")
}
