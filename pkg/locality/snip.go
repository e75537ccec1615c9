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

// Package locality implements the span arithmetic shared by every stage of
// the streaming pipeline: a Snip is a half-open range in one coordinate
// system, and Local[T] stamps a value with its char-Snip and byte-Snip in
// the original source.
package locality

import "fmt"

// Snip is a half-open range {Offset, Length} in a single coordinate system
// (either "characters" or "bytes" — the two are never mixed within one Snip).
type Snip struct {
	Offset int
	Length int
}

// End returns the first offset past the range.
func (s Snip) End() int {
	return s.Offset + s.Length
}

// IsZero reports whether s is the zero-width, zero-offset Snip.
func (s Snip) IsZero() bool {
	return s.Offset == 0 && s.Length == 0
}

// WithShift returns s translated by delta.
func (s Snip) WithShift(delta int) Snip {
	return Snip{Offset: s.Offset + delta, Length: s.Length}
}

// Segment returns the Snip that spans from begin (inclusive) through end
// (inclusive of end's own length, i.e. end.End() is the resulting End()).
//
// It fails with EndBeforeBegin when end starts before begin does; a
// zero-width result (begin == end) is legal and common (e.g. an empty
// attribute value).
func Segment(begin, end Snip) (Snip, error) {
	if end.Offset < begin.Offset {
		return Snip{}, EndBeforeBegin{Begin: begin, End: end}
	}
	return Snip{Offset: begin.Offset, Length: end.End() - begin.Offset}, nil
}

// EndBeforeBegin is returned by FromSegment when the end Snip precedes the
// begin Snip in the coordinate system. It indicates an implementation bug,
// not a user-input error: the stream that produced it should be considered
// unrecoverable.
type EndBeforeBegin struct {
	Begin Snip
	End   Snip
}

func (e EndBeforeBegin) Error() string {
	return fmt.Sprintf("locality: end %v begins before begin %v", e.End, e.Begin)
}
