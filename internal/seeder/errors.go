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
package seeder

import (
	"fmt"
	"strings"

	"github.com/dataforge-db/dataforge/internal/config"
)

// ErrEmptyParentTable is the referential-integrity guard: a table cannot be
// seeded while a table it references has no rows to point at.
type ErrEmptyParentTable struct {
	Table  string
	Parent string
}

func (e *ErrEmptyParentTable) Error() string {
	return fmt.Sprintf("parent table '%s' is empty; seed it before '%s'", e.Parent, e.Table)
}

// ErrUnsupportedLocale reports a locale outside the supported set. Checked
// before any I/O.
type ErrUnsupportedLocale struct {
	Locale string
}

func (e *ErrUnsupportedLocale) Error() string {
	return fmt.Sprintf("unsupported locale '%s'. Supported: %s", e.Locale, strings.Join(config.SupportedLocales, ", "))
}

// ErrRowCountExceeded reports a row count above the configured maximum.
// Checked before any I/O.
type ErrRowCountExceeded struct {
	Count int
	Max   int
}

func (e *ErrRowCountExceeded) Error() string {
	return fmt.Sprintf("row count %d exceeds the maximum of %d rows per request", e.Count, e.Max)
}
