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
package utils

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ParseCustomValues parses the --custom flag: a JSON object mapping column
// names to non-empty arrays of candidate values, e.g.
// '{"role": ["admin", "user"], "status": ["active"]}'.
func ParseCustomValues(raw string) (map[string][]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var values map[string][]interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("invalid custom values JSON: %w", err)
	}
	for column, candidates := range values {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("custom values for column '%s' cannot be empty", column)
		}
	}
	return values, nil
}

// ParseTableCustomValues parses the seed-all variant of the --custom flag: a
// JSON object keyed by table name, each value shaped as in ParseCustomValues.
func ParseTableCustomValues(raw string) (map[string]map[string][]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var perTable map[string]map[string][]interface{}
	if err := json.Unmarshal([]byte(raw), &perTable); err != nil {
		return nil, fmt.Errorf("invalid custom values JSON: %w", err)
	}
	for table, values := range perTable {
		for column, candidates := range values {
			if len(candidates) == 0 {
				return nil, fmt.Errorf("custom values for column '%s' in table '%s' cannot be empty", column, table)
			}
		}
	}
	return perTable, nil
}

// ConfirmAction prompts for a yes/no confirmation on stdin.
func ConfirmAction(actionDescription string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n-------------------------------------------------------------\n")
	fmt.Printf("%s\n", actionDescription)
	fmt.Print("Do you want to proceed? (yes/no): ")
	text, _ := reader.ReadString('\n')
	action := strings.TrimSpace(strings.ToLower(text))
	return action == "yes" || action == "y"
}
