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
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// ValueSource supplies concrete literals for the semantic categories the value
// generation policy recognizes. The policy decides WHICH category a column
// belongs to; the source decides WHAT the literal looks like.
type ValueSource interface {
	Locale() string
	PersonName() string
	Email() string
	Phone() string
	Address() string
	City() string
	Country() string
	Company() string
	Word() string
	Text(maxChars int) string
	Paragraph() string
	Bool() bool
	IntBetween(min, max int) int
	FloatBetween(min, max float64) float64
	DateBetween(start, end time.Time) time.Time
	UUID() string
}

type fakerSource struct {
	f      *gofakeit.Faker
	locale string
	seeded bool
}

// NewSource builds the default faker-backed value source. A zero seed produces
// a random stream; any other seed makes the stream reproducible.
func NewSource(locale string, seed uint64) ValueSource {
	return &fakerSource{
		f:      gofakeit.New(seed),
		locale: locale,
		seeded: seed != 0,
	}
}

func (s *fakerSource) Locale() string     { return s.locale }
func (s *fakerSource) PersonName() string { return s.f.Name() }
func (s *fakerSource) Email() string      { return s.f.Email() }
func (s *fakerSource) Phone() string      { return s.f.Phone() }
func (s *fakerSource) Address() string    { return s.f.Address().Address }
func (s *fakerSource) City() string       { return s.f.City() }
func (s *fakerSource) Country() string    { return s.f.Country() }
func (s *fakerSource) Company() string    { return s.f.Company() }
func (s *fakerSource) Word() string       { return s.f.Word() }

func (s *fakerSource) Text(maxChars int) string {
	text := s.f.Sentence(8)
	if len(text) > maxChars {
		text = strings.TrimSpace(text[:maxChars])
	}
	return text
}

func (s *fakerSource) Paragraph() string {
	return s.f.Paragraph(1, 3, 12, " ")
}

func (s *fakerSource) Bool() bool {
	return s.f.Bool()
}

func (s *fakerSource) IntBetween(min, max int) int {
	return s.f.Number(min, max)
}

func (s *fakerSource) FloatBetween(min, max float64) float64 {
	return s.f.Float64Range(min, max)
}

func (s *fakerSource) DateBetween(start, end time.Time) time.Time {
	return s.f.DateRange(start, end)
}

// UUID stays on the faker stream when seeded so runs reproduce; unseeded runs
// use crypto-random v4 identifiers.
func (s *fakerSource) UUID() string {
	if s.seeded {
		return s.f.UUID()
	}
	return uuid.NewString()
}
