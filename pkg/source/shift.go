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

// Shift wraps a Source, translating every event's spans by a fixed
// (chars, bytes) delta. It is exported as a standalone combinator; inside
// this package, Chain uses it to continue the first source's coordinate
// system in the second (e.g. a synthetic breaker spliced in via OptSource).
type Shift struct {
	inner      Source
	deltaChars int
	deltaBytes int
}

// NewShift builds a Source that reports inner's events shifted by delta.
func NewShift(inner Source, delta Processed) *Shift {
	return &Shift{inner: inner, deltaChars: delta.Chars, deltaBytes: delta.Bytes}
}

func (s *Shift) NextChar() (locality.Local[SourceEvent], bool, error) {
	ev, ok, err := s.inner.NextChar()
	if err != nil || !ok {
		return locality.Local[SourceEvent]{}, ok, err
	}
	return ev.WithShift(s.deltaChars, s.deltaBytes), true, nil
}

func (s *Shift) Processed() Processed {
	inner := s.inner.Processed()
	return Processed{Chars: inner.Chars + s.deltaChars, Bytes: inner.Bytes + s.deltaBytes}
}
