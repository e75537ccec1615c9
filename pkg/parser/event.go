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

// Package parser widens source.SourceEvent with a third "Parsed" variant
// carrying a caller-supplied structured datum (a decoded Entity, a
// recognized Tag, a detected Paragraph, ...), and provides the adapters
// that compose a Parser with a Source or with another Parser.
package parser

import (
	"github.com/oskarpol/streammark/pkg/source"
)

// Kind discriminates an Event[D].
type Kind int

const (
	KindChar Kind = iota
	KindBreaker
	KindParsed
)

// Event is the Parser-level widening of source.SourceEvent: a char, a
// breaker, or a parsed datum of type D.
type Event[D any] struct {
	Kind    Kind
	Char    rune
	Breaker source.Breaker
	Parsed  D
}

// CharEvent builds an Event carrying a code point.
func CharEvent[D any](r rune) Event[D] {
	return Event[D]{Kind: KindChar, Char: r}
}

// BreakerEvent builds an Event carrying a Breaker.
func BreakerEvent[D any](b source.Breaker) Event[D] {
	return Event[D]{Kind: KindBreaker, Breaker: b}
}

// ParsedEvent builds an Event carrying a structured datum.
func ParsedEvent[D any](d D) Event[D] {
	return Event[D]{Kind: KindParsed, Parsed: d}
}

// FromSourceEvent widens a plain source.SourceEvent into an Event[D]; it
// can never produce KindParsed.
func FromSourceEvent[D any](ev source.SourceEvent) Event[D] {
	if ev.Kind == source.KindBreaker {
		return BreakerEvent[D](ev.Breaker)
	}
	return CharEvent[D](ev.Char)
}
