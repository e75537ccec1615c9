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

package locality

// Local stamps a payload of type T with the two coordinate systems every
// emitted datum carries: its position in characters (code points) and its
// position in bytes (UTF-8) within the original source.
//
// Every stage of the pipeline threads Local values end to end: a Source
// yields Local[SourceEvent], a Parser yields Local[ParserEvent[D]], and so
// on. Implementations must compute CharSnip and ByteSnip independently —
// never infer one from the other — since filters, entity decoding and
// encoding transforms can make the two diverge (e.g. a decoded two-byte
// UTF-8 rune still advances CharSnip by exactly 1).
type Local[T any] struct {
	CharSnip Snip
	ByteSnip Snip
	Inner    T
}

// NewLocal stamps inner with the given spans.
func NewLocal[T any](charSnip, byteSnip Snip, inner T) Local[T] {
	return Local[T]{CharSnip: charSnip, ByteSnip: byteSnip, Inner: inner}
}

// Map transforms the payload while preserving both spans.
func Map[T, U any](l Local[T], f func(T) U) Local[U] {
	return Local[U]{CharSnip: l.CharSnip, ByteSnip: l.ByteSnip, Inner: f(l.Inner)}
}

// WithInner replaces the payload, keeping l's spans.
func WithInner[T, U any](l Local[T], inner U) Local[U] {
	return Local[U]{CharSnip: l.CharSnip, ByteSnip: l.ByteSnip, Inner: inner}
}

// LocalOf copies l's spans onto a freshly supplied payload. It is the
// non-generic-method-set counterpart of WithInner, useful when the payload
// type does not change but the value does (e.g. re-stamping a literal `&`
// emitted after a failed entity decode).
func LocalOf[T any](l Local[T], inner T) Local[T] {
	return Local[T]{CharSnip: l.CharSnip, ByteSnip: l.ByteSnip, Inner: inner}
}

// FromSegment returns the Local[T] enclosing the span from begin through
// end (inclusive of end's own span), carrying inner as its payload. It
// fails with EndBeforeBegin if either coordinate has end preceding begin.
func FromSegment[T any](begin, end Local[any], inner T) (Local[T], error) {
	charSnip, err := Segment(begin.CharSnip, end.CharSnip)
	if err != nil {
		return Local[T]{}, err
	}
	byteSnip, err := Segment(begin.ByteSnip, end.ByteSnip)
	if err != nil {
		return Local[T]{}, err
	}
	return Local[T]{CharSnip: charSnip, ByteSnip: byteSnip, Inner: inner}, nil
}

// WithShift returns l translated by (dc, db) in the char and byte
// coordinate systems respectively. Used when a Source is spliced after
// another (see source.Shift) so its offsets continue the upstream
// coordinate system instead of restarting at zero.
func (l Local[T]) WithShift(dc, db int) Local[T] {
	return Local[T]{
		CharSnip: l.CharSnip.WithShift(dc),
		ByteSnip: l.ByteSnip.WithShift(db),
		Inner:    l.Inner,
	}
}

// Span returns a type-erased view of l's spans, suitable for passing to
// FromSegment as a begin/end marker regardless of the original payload type.
func (l Local[T]) Span() Local[any] {
	return Local[any]{CharSnip: l.CharSnip, ByteSnip: l.ByteSnip}
}
