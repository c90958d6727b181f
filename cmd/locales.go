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

	"github.com/dataforge-db/dataforge/internal/config"
)

// localesCmd represents the locales command
var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the supported locale identifiers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported locales:")
		for _, locale := range config.SupportedLocales {
			fmt.Printf("  %s\n", locale)
		}
	},
}
