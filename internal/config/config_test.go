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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataforge.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIsSupportedLocale(t *testing.T) {
	assert.True(t, IsSupportedLocale("en_US"))
	assert.True(t, IsSupportedLocale("uk_UA"))
	assert.False(t, IsSupportedLocale("xx_XX"))
	assert.False(t, IsSupportedLocale(""))
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dialect: postgres
  host: localhost
  port: 5432
  user: postgres
  dbname: shop

global_settings:
  default_count: 25
  max_count: 500
  sample_limit: 50
  default_locale: de_DE

tables:
  users:
    count: 100
    locale: en_US
    custom_values:
      role: ["admin", "user"]
  products:
    count: 200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.Equal(t, "shop", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Settings.DefaultCount)
	assert.Equal(t, 500, cfg.Settings.MaxCount)
	assert.Equal(t, 50, cfg.Settings.SampleLimit)
	assert.Equal(t, "de_DE", cfg.Settings.DefaultLocale)
	require.Len(t, cfg.Tables, 2)
	assert.Equal(t, 100, cfg.Tables["users"].Count)
	assert.Equal(t, []interface{}{"admin", "user"}, cfg.Tables["users"].CustomValues["role"])
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dialect: sqlite
  file: test.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Settings.DefaultCount)
	assert.Equal(t, 1000, cfg.Settings.MaxCount)
	assert.Equal(t, 100, cfg.Settings.SampleLimit)
	assert.Equal(t, "en_US", cfg.Settings.DefaultLocale)
	assert.Equal(t, "test.db", cfg.Database.FilePath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadMissingDialect(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialect")
}

func TestLoadRejectsBadLocale(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dialect: postgres

tables:
  users:
    locale: xx_XX
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported locale")
}

func TestLoadRejectsExcessiveCount(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dialect: postgres

global_settings:
  max_count: 100

tables:
  users:
    count: 500
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed")
}

func TestLoadRejectsEmptyCustomValues(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dialect: postgres

tables:
  users:
    custom_values:
      role: []
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestWriteExampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataforge.yml")
	require.NoError(t, WriteExample(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.Contains(t, cfg.Tables, "users")
	assert.Contains(t, cfg.Tables, "order_items")
	require.NoError(t, cfg.Validate())
}
