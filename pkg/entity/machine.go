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

package entity

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/runtime"
	"github.com/oskarpol/streammark/pkg/source"
)

type kind int

const (
	kindInit kind = iota
	kindMayBeEntity
	kindMayBeNumEntity
	kindEntityNamed
	kindEntityNumber
	kindEntityNumberX
)

// readEntity accumulates what has been consumed since the opening '&' for
// the two "content-growing" states, EntityNamed/EntityNumber(X).
type readEntity struct {
	begin   locality.Local[source.SourceEvent]
	content string
	chars   []locality.Local[source.SourceEvent]
}

// State is the entity decoder's state. Its zero value is kindInit, matching
// the "Default is always Init" rule.
type State struct {
	kind kind
	amp  locality.Local[source.SourceEvent]
	hash locality.Local[source.SourceEvent]
	read readEntity
}

// Machine decodes character references. It is stateless itself; all
// progress lives in State, as runtime.Driver requires.
type Machine struct{}

var _ runtime.Machine[State, Entity, *Table] = Machine{}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == ':'
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func asChars[D any](evs ...locality.Local[source.SourceEvent]) []locality.Local[parser.Event[D]] {
	out := make([]locality.Local[parser.Event[D]], len(evs))
	for i, e := range evs {
		out[i] = locality.Map(e, parser.FromSourceEvent[D])
	}
	return out
}

// NextState implements runtime.Machine.
func (Machine) NextState(st State, ev locality.Local[source.SourceEvent], table *Table) (runtime.Next[State, Entity], error) {
	if ev.Inner.Kind == source.KindBreaker {
		return nextOnBreaker(st, ev, table)
	}
	r := ev.Inner.Char

	switch st.kind {
	case kindInit:
		if r == '&' {
			return runtime.Next[State, Entity]{State: State{kind: kindMayBeEntity, amp: ev}}, nil
		}
		return runtime.Next[State, Entity]{
			State:  State{kind: kindInit},
			Events: asChars[Entity](ev),
		}, nil

	case kindMayBeEntity:
		switch {
		case r == '#':
			return runtime.Next[State, Entity]{State: State{kind: kindMayBeNumEntity, amp: st.amp, hash: ev}}, nil
		case isNameStart(r):
			return runtime.Next[State, Entity]{State: State{
				kind: kindEntityNamed,
				read: readEntity{begin: st.amp, content: string(r), chars: []locality.Local[source.SourceEvent]{st.amp, ev}},
			}}, nil
		case r == '&':
			return runtime.Next[State, Entity]{
				State:  State{kind: kindMayBeEntity, amp: ev},
				Events: asChars[Entity](st.amp),
			}, nil
		default:
			return runtime.Next[State, Entity]{
				State:  State{kind: kindInit},
				Events: asChars[Entity](st.amp, ev),
			}, nil
		}

	case kindMayBeNumEntity:
		switch {
		case r == 'x' || r == 'X':
			return runtime.Next[State, Entity]{State: State{
				kind: kindEntityNumberX,
				read: readEntity{begin: st.amp, content: "", chars: []locality.Local[source.SourceEvent]{st.amp, st.hash, ev}},
			}}, nil
		case r >= '0' && r <= '9':
			return runtime.Next[State, Entity]{State: State{
				kind: kindEntityNumber,
				read: readEntity{begin: st.amp, content: string(r), chars: []locality.Local[source.SourceEvent]{st.amp, st.hash, ev}},
			}}, nil
		case r == '&':
			return runtime.Next[State, Entity]{
				State:  State{kind: kindMayBeEntity, amp: ev},
				Events: asChars[Entity](st.amp, st.hash),
			}, nil
		default:
			return runtime.Next[State, Entity]{
				State:  State{kind: kindInit},
				Events: asChars[Entity](st.amp, st.hash, ev),
			}, nil
		}

	case kindEntityNamed:
		switch {
		case isNameChar(r):
			read := st.read
			read.content += string(r)
			read.chars = append(read.chars, ev)
			return runtime.Next[State, Entity]{State: State{kind: kindEntityNamed, read: read}}, nil
		case r == ';':
			read := st.read
			read.chars = append(read.chars, ev)
			events, err := finalizeNamed(read, ev, true, table)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, err
		case r == '&':
			last := st.read.chars[len(st.read.chars)-1]
			events, err := finalizeNamed(st.read, last, false, table)
			if err != nil {
				return runtime.Next[State, Entity]{}, err
			}
			return runtime.Next[State, Entity]{State: State{kind: kindMayBeEntity, amp: ev}, Events: events}, nil
		default:
			last := st.read.chars[len(st.read.chars)-1]
			events, err := finalizeNamed(st.read, last, false, table)
			if err != nil {
				return runtime.Next[State, Entity]{}, err
			}
			events = append(events, asChars[Entity](ev)...)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
		}

	case kindEntityNumber:
		switch {
		case r >= '0' && r <= '9':
			read := st.read
			read.content += string(r)
			read.chars = append(read.chars, ev)
			return runtime.Next[State, Entity]{State: State{kind: kindEntityNumber, read: read}}, nil
		case r == ';':
			read := st.read
			read.chars = append(read.chars, ev)
			events, err := finalizeNumeric(read, ev, 10)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, err
		case r == '&':
			events := asChars[Entity](st.read.chars...)
			return runtime.Next[State, Entity]{State: State{kind: kindMayBeEntity, amp: ev}, Events: events}, nil
		default:
			events := asChars[Entity](st.read.chars...)
			events = append(events, asChars[Entity](ev)...)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
		}

	case kindEntityNumberX:
		switch {
		case isHexDigit(r):
			read := st.read
			read.content += string(r)
			read.chars = append(read.chars, ev)
			return runtime.Next[State, Entity]{State: State{kind: kindEntityNumberX, read: read}}, nil
		case r == ';':
			read := st.read
			read.chars = append(read.chars, ev)
			events, err := finalizeNumeric(read, ev, 16)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, err
		case r == '&':
			events := asChars[Entity](st.read.chars...)
			return runtime.Next[State, Entity]{State: State{kind: kindMayBeEntity, amp: ev}, Events: events}, nil
		default:
			events := asChars[Entity](st.read.chars...)
			events = append(events, asChars[Entity](ev)...)
			return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
		}
	}

	// Unreachable: kind is one of the constants above.
	return runtime.Next[State, Entity]{State: State{kind: kindInit}}, nil
}

// nextOnBreaker handles a Breaker arriving mid-entity: named states attempt
// a "success" finalize (the same legacy no-semicolon lookup EntityNamed
// uses on any other terminating char), numeric states finalize as failure.
// Either way the breaker itself is forwarded unchanged after the finalize.
func nextOnBreaker(st State, ev locality.Local[source.SourceEvent], table *Table) (runtime.Next[State, Entity], error) {
	forwarded := asChars[Entity](ev)
	switch st.kind {
	case kindInit:
		return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: forwarded}, nil
	case kindMayBeEntity:
		events := asChars[Entity](st.amp)
		events = append(events, forwarded...)
		return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
	case kindMayBeNumEntity:
		events := asChars[Entity](st.amp, st.hash)
		events = append(events, forwarded...)
		return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
	case kindEntityNamed:
		last := st.read.chars[len(st.read.chars)-1]
		events, err := finalizeNamed(st.read, last, false, table)
		if err != nil {
			return runtime.Next[State, Entity]{}, err
		}
		events = append(events, forwarded...)
		return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
	case kindEntityNumber, kindEntityNumberX:
		events := asChars[Entity](st.read.chars...)
		events = append(events, forwarded...)
		return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: events}, nil
	}
	return runtime.Next[State, Entity]{State: State{kind: kindInit}, Events: forwarded}, nil
}

// finalizeNamed resolves read.content against table, emitting a single
// Parsed(Entity) on success or the raw consumed chars on a miss. end is the
// Local whose span closes the enclosing from_segment (the ';' when present,
// otherwise the last name char).
func finalizeNamed(read readEntity, end locality.Local[source.SourceEvent], hasSemicolon bool, table *Table) ([]locality.Local[parser.Event[Entity]], error) {
	instance, ok := table.Lookup(read.content, hasSemicolon)
	if !ok {
		return asChars[Entity](read.chars...), nil
	}
	raw := rawText(read.chars)
	spanned, err := locality.FromSegment(read.begin.Span(), end.Span(), parser.ParsedEvent[Entity](Entity{Raw: raw, Resolved: instance}))
	if err != nil {
		return nil, err
	}
	return []locality.Local[parser.Event[Entity]]{spanned}, nil
}

// finalizeNumeric parses read.content in the given base, emitting
// Parsed(Entity) when it maps to a valid Unicode scalar, or the raw
// consumed chars otherwise.
func finalizeNumeric(read readEntity, end locality.Local[source.SourceEvent], base int) ([]locality.Local[parser.Event[Entity]], error) {
	value, err := strconv.ParseUint(read.content, base, 32)
	if err != nil {
		return asChars[Entity](read.chars...), nil
	}
	r := rune(value)
	if value > utf8.MaxRune || !utf8.ValidRune(r) {
		return asChars[Entity](read.chars...), nil
	}
	raw := rawText(read.chars)
	spanned, fsErr := locality.FromSegment(read.begin.Span(), end.Span(), parser.ParsedEvent[Entity](Entity{Raw: raw, Resolved: Char(r)}))
	if fsErr != nil {
		return nil, fsErr
	}
	return []locality.Local[parser.Event[Entity]]{spanned}, nil
}

func rawText(chars []locality.Local[source.SourceEvent]) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(c.Inner.String())
	}
	return b.String()
}
