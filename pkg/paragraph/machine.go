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

package paragraph

import (
	"unicode"

	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/runtime"
	"github.com/oskarpol/streammark/pkg/source"
)

type kind int

const (
	kindInit kind = iota
	kindFirst
)

// State is Init when kind is its zero value; First holds the run of
// whitespace-class events buffered since the first line break, waiting to
// see whether a second one follows.
type State struct {
	kind kind
	buf  []locality.Local[source.SourceEvent]
}

// Machine implements runtime.Machine[State, Paragraph, struct{}].
type Machine struct{}

var _ runtime.Machine[State, Paragraph, struct{}] = Machine{}

// isNewlineLike reports the two events that arm or close a paragraph
// boundary: a literal '\n' (the detector may run ahead of IntoSeparator)
// or an already-classified Line breaker.
func isNewlineLike(ev source.SourceEvent) bool {
	if ev.Kind == source.KindChar {
		return ev.Char == '\n'
	}
	return ev.Breaker == source.Line
}

// isBufferable reports the events that extend a pending First(buf) run
// without resolving it either way: control/space chars, or a breaker no
// higher than Sentence in the fixed order.
func isBufferable(ev source.SourceEvent) bool {
	if ev.Kind == source.KindChar {
		return unicode.IsControl(ev.Char) || unicode.In(ev.Char, unicode.Zs)
	}
	switch ev.Breaker {
	case source.None, source.Space, source.Word, source.Sentence:
		return true
	default:
		return false
	}
}

func asEvent(ev locality.Local[source.SourceEvent]) locality.Local[parser.Event[Paragraph]] {
	return locality.Map(ev, parser.FromSourceEvent[Paragraph])
}

func asEventSlice(evs []locality.Local[source.SourceEvent]) []locality.Local[parser.Event[Paragraph]] {
	out := make([]locality.Local[parser.Event[Paragraph]], len(evs))
	for i, ev := range evs {
		out[i] = asEvent(ev)
	}
	return out
}

// NextState implements runtime.Machine.
func (Machine) NextState(st State, ev locality.Local[source.SourceEvent], ctx struct{}) (runtime.Next[State, Paragraph], error) {
	switch st.kind {
	case kindInit:
		if isNewlineLike(ev.Inner) {
			return runtime.Next[State, Paragraph]{
				State: State{kind: kindFirst, buf: []locality.Local[source.SourceEvent]{ev}},
			}, nil
		}
		return runtime.Next[State, Paragraph]{Events: []locality.Local[parser.Event[Paragraph]]{asEvent(ev)}}, nil

	default: // kindFirst
		if isNewlineLike(ev.Inner) {
			begin := st.buf[0]
			parsed, err := locality.FromSegment(begin.Span(), ev.Span(), parser.ParsedEvent[Paragraph](Paragraph{}))
			if err != nil {
				return runtime.Next[State, Paragraph]{}, err
			}
			return runtime.Next[State, Paragraph]{
				Events: []locality.Local[parser.Event[Paragraph]]{parsed},
			}, nil
		}
		if isBufferable(ev.Inner) {
			buf := make([]locality.Local[source.SourceEvent], len(st.buf), len(st.buf)+1)
			copy(buf, st.buf)
			buf = append(buf, ev)
			return runtime.Next[State, Paragraph]{State: State{kind: kindFirst, buf: buf}}, nil
		}
		events := asEventSlice(st.buf)
		events = append(events, asEvent(ev))
		return runtime.Next[State, Paragraph]{Events: events}, nil
	}
}
