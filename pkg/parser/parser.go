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

package parser

import (
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/source"
)

// Parser is a richer pull node than Source: given an upstream Source, it
// produces Local[Event[D]] values — chars and breakers passed through, plus
// a third "Parsed" kind for the structured data it extracts (an Entity, a
// Tag, a Paragraph marker, ...).
//
// NextEvent takes src as an explicit argument (rather than owning it)
// because the generic Runtime driver (pkg/runtime) is the only thing that
// actually advances a state machine; a Parser built on top of it is free to
// be called against any upstream Source, as long as the same Source is
// supplied on every call for a given Parser instance.
type Parser[D any] interface {
	NextEvent(src source.Source) (locality.Local[Event[D]], bool, error)
}

// Func adapts a plain function into a Parser.
type Func[D any] func(src source.Source) (locality.Local[Event[D]], bool, error)

// NextEvent calls f(src).
func (f Func[D]) NextEvent(src source.Source) (locality.Local[Event[D]], bool, error) {
	return f(src)
}

// Identity is a Parser that maps every source event straight through as a
// Char or Breaker event; it never produces Parsed values. It underlies
// Option(nil).
type Identity[D any] struct{}

func (Identity[D]) NextEvent(src source.Source) (locality.Local[Event[D]], bool, error) {
	ev, ok, err := src.NextChar()
	if err != nil || !ok {
		return locality.Local[Event[D]]{}, ok, err
	}
	return locality.Map(ev, FromSourceEvent[D]), true, nil
}

// Option delegates to inner when non-nil; when nil, it behaves as Identity,
// identity-mapping source events into parser events. This matches
// Rust's Option<P> pass-through described in spec.md §4.7.
func Option[D any](inner Parser[D]) Parser[D] {
	if inner != nil {
		return inner
	}
	return Identity[D]{}
}

// Filtered is a streaming filter over ParserEvent[D]: only events accepted
// by predicate are let through.
type Filtered[D any] struct {
	inner     Parser[D]
	predicate func(Event[D]) bool
}

// NewFiltered builds a Parser that only lets through events accepted by predicate.
func NewFiltered[D any](inner Parser[D], predicate func(Event[D]) bool) *Filtered[D] {
	return &Filtered[D]{inner: inner, predicate: predicate}
}

func (f *Filtered[D]) NextEvent(src source.Source) (locality.Local[Event[D]], bool, error) {
	for {
		ev, ok, err := f.inner.NextEvent(src)
		if err != nil || !ok {
			return ev, ok, err
		}
		if f.predicate(ev.Inner) {
			return ev, true, nil
		}
	}
}
