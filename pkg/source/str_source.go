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
	"unicode/utf8"

	"github.com/oskarpol/streammark/pkg/locality"
)

// StrSource enumerates a string's code points, stamping each with its
// char-index and byte-index, and tracks Processed as it yields.
type StrSource struct {
	text      string
	charIndex int
	byteIndex int
}

// NewStrSource builds a Source over the UTF-8 string s.
func NewStrSource(s string) *StrSource {
	return &StrSource{text: s}
}

func (s *StrSource) NextChar() (locality.Local[SourceEvent], bool, error) {
	if s.byteIndex >= len(s.text) {
		return locality.Local[SourceEvent]{}, false, nil
	}
	r, size := utf8.DecodeRuneInString(s.text[s.byteIndex:])
	if r == utf8.RuneError && size == 1 {
		r = rune(s.text[s.byteIndex])
	}
	ev := locality.Local[SourceEvent]{
		CharSnip: locality.Snip{Offset: s.charIndex, Length: 1},
		ByteSnip: locality.Snip{Offset: s.byteIndex, Length: size},
		Inner:    CharEvent(r),
	}
	s.charIndex++
	s.byteIndex += size
	return ev, true, nil
}

func (s *StrSource) Processed() Processed {
	return Processed{Chars: s.charIndex, Bytes: s.byteIndex}
}

// OptSource yields at most one precomputed event; it is used to splice a
// synthetic Breaker into a chain of sources (see Chain).
type OptSource struct {
	event locality.Local[SourceEvent]
	used  bool
}

// NewOptSource wraps a single event to be yielded exactly once.
func NewOptSource(event locality.Local[SourceEvent]) *OptSource {
	return &OptSource{event: event}
}

func (s *OptSource) NextChar() (locality.Local[SourceEvent], bool, error) {
	if s.used {
		return locality.Local[SourceEvent]{}, false, nil
	}
	s.used = true
	return s.event, true, nil
}

func (s *OptSource) Processed() Processed {
	if s.used {
		return Processed{Chars: s.event.CharSnip.Length, Bytes: s.event.ByteSnip.Length}
	}
	return Processed{}
}
