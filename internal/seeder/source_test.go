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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceSeededStreamsAreReproducible(t *testing.T) {
	a := NewSource("en_US", 99)
	b := NewSource("en_US", 99)

	assert.Equal(t, a.PersonName(), b.PersonName())
	assert.Equal(t, a.Email(), b.Email())
	assert.Equal(t, a.UUID(), b.UUID())
	assert.Equal(t, a.IntBetween(1, 1000), b.IntBetween(1, 1000))
}

func TestSourceTextRespectsMaxChars(t *testing.T) {
	src := NewSource("en_US", 1)

	for i := 0; i < 20; i++ {
		assert.LessOrEqual(t, len(src.Text(50)), 50)
	}
}

func TestSourceRanges(t *testing.T) {
	src := NewSource("en_US", 3)

	for i := 0; i < 50; i++ {
		n := src.IntBetween(1, 10)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)

		f := src.FloatBetween(10, 100)
		assert.GreaterOrEqual(t, f, 10.0)
		assert.LessOrEqual(t, f, 100.0)
	}

	start := time.Now().AddDate(-1, 0, 0)
	end := time.Now()
	d := src.DateBetween(start, end)
	assert.False(t, d.Before(start))
	assert.False(t, d.After(end))
}

func TestSourceUUIDFormat(t *testing.T) {
	seeded := NewSource("en_US", 5).UUID()
	random := NewSource("en_US", 0).UUID()

	require.Len(t, seeded, 36)
	require.Len(t, random, 36)
	assert.NotEqual(t, seeded, random)
}

func TestSourceLocale(t *testing.T) {
	assert.Equal(t, "uk_UA", NewSource("uk_UA", 0).Locale())
}
