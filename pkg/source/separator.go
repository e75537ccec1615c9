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

import (
	"unicode"

	"github.com/oskarpol/streammark/pkg/locality"
)

// classify implements the "Unicode general-category query" external
// predicate from spec.md §6, using the standard library's own Unicode
// range tables — the ecosystem-standard source for this data; no pack
// dependency offers a more specific categorizer (see DESIGN.md).
func classify(r rune) (Breaker, bool) {
	if r == '\n' {
		return Line, true
	}
	switch {
	case unicode.IsControl(r), unicode.In(r, unicode.Zs):
		return Space, true
	case unicode.In(r, unicode.Zl):
		return Line, true
	case unicode.In(r, unicode.Zp):
		return Paragraph, true
	}
	return None, false
}

// IntoSeparator rewrites certain chars into Breakers based on their Unicode
// general category: Cc|Zs -> Space, Zl -> Line, Zp -> Paragraph, and the
// literal '\n' -> Line (checked first, since '\n' is itself Cc). All other
// chars, and every Breaker already on the stream, pass through unchanged.
type IntoSeparator struct {
	inner Source
}

// NewIntoSeparator builds a Source that classifies whitespace chars into Breakers.
func NewIntoSeparator(inner Source) *IntoSeparator {
	return &IntoSeparator{inner: inner}
}

func (s *IntoSeparator) NextChar() (locality.Local[SourceEvent], bool, error) {
	ev, ok, err := s.inner.NextChar()
	if err != nil || !ok {
		return locality.Local[SourceEvent]{}, ok, err
	}
	if ev.Inner.Kind == KindChar {
		if b, matched := classify(ev.Inner.Char); matched {
			ev.Inner = BreakerEvent(b)
		}
	}
	return ev, true, nil
}

func (s *IntoSeparator) Processed() Processed {
	return s.inner.Processed()
}

// MergeSeparator coalesces adjacent Breakers into one, using Breaker.Merge.
// It buffers at most one pending Breaker (awaiting a possible further merge
// or a flush) and at most one pending char (displaced by a flush).
type MergeSeparator struct {
	inner          Source
	pendingBreaker *locality.Local[SourceEvent]
	pendingChar    *locality.Local[SourceEvent]
}

// NewMergeSeparator builds a Source that merges runs of adjacent Breakers.
func NewMergeSeparator(inner Source) *MergeSeparator {
	return &MergeSeparator{inner: inner}
}

func (m *MergeSeparator) NextChar() (locality.Local[SourceEvent], bool, error) {
	if m.pendingChar != nil {
		ev := *m.pendingChar
		m.pendingChar = nil
		return ev, true, nil
	}

	for {
		next, ok, err := m.inner.NextChar()
		if err != nil {
			return locality.Local[SourceEvent]{}, false, err
		}
		if !ok {
			if m.pendingBreaker != nil {
				ev := *m.pendingBreaker
				m.pendingBreaker = nil
				return ev, true, nil
			}
			return locality.Local[SourceEvent]{}, false, nil
		}

		if next.Inner.Kind != KindBreaker {
			if m.pendingBreaker != nil {
				flushed := *m.pendingBreaker
				m.pendingBreaker = nil
				pending := next
				m.pendingChar = &pending
				return flushed, true, nil
			}
			return next, true, nil
		}

		// next is a Breaker.
		if m.pendingBreaker == nil {
			pb := next
			m.pendingBreaker = &pb
			continue
		}
		merged := m.pendingBreaker.Inner.Breaker.Merge(next.Inner.Breaker)
		span, err := locality.FromSegment(m.pendingBreaker.Span(), next.Span(), BreakerEvent(merged))
		if err != nil {
			return locality.Local[SourceEvent]{}, false, err
		}
		m.pendingBreaker = &span
	}
}

func (m *MergeSeparator) Processed() Processed {
	return m.inner.Processed()
}
