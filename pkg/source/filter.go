// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import "github.com/oskarpol/streammark/pkg/locality"

// Filter drops chars for which predicate returns false; breakers always
// pass through unchanged, and spans are preserved on everything that does
// pass through.
type Filter struct {
	inner     Source
	predicate func(rune) bool
}

// NewFilter builds a Source that only lets through chars accepted by predicate.
func NewFilter(inner Source, predicate func(rune) bool) *Filter {
	return &Filter{inner: inner, predicate: predicate}
}

func (f *Filter) NextChar() (locality.Local[SourceEvent], bool, error) {
	for {
		ev, ok, err := f.inner.NextChar()
		if err != nil || !ok {
			return locality.Local[SourceEvent]{}, ok, err
		}
		if ev.Inner.Kind == KindBreaker || f.predicate(ev.Inner.Char) {
			return ev, true, nil
		}
	}
}

func (f *Filter) Processed() Processed {
	return f.inner.Processed()
}

// MapChar rewrites only Char payloads via f; Breaker events and all spans
// pass through unchanged.
type MapChar struct {
	inner Source
	f     func(rune) rune
}

// NewMapChar builds a Source that rewrites every Char payload through f.
func NewMapChar(inner Source, f func(rune) rune) *MapChar {
	return &MapChar{inner: inner, f: f}
}

func (m *MapChar) NextChar() (locality.Local[SourceEvent], bool, error) {
	ev, ok, err := m.inner.NextChar()
	if err != nil || !ok {
		return locality.Local[SourceEvent]{}, ok, err
	}
	if ev.Inner.Kind == KindChar {
		ev.Inner.Char = m.f(ev.Inner.Char)
	}
	return ev, true, nil
}

func (m *MapChar) Processed() Processed {
	return m.inner.Processed()
}
