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

package tagger

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
	kindMayBeTag
	kindSlashedTag
	kindTagName
	kindTagWaitAttrName
	kindTagWaitAttrEq
	kindTagWaitAttrValue
	kindTagAttrName
	kindTagAttrValue
	kindTagAttrValueApos
	kindTagAttrValueQuote
	kindTagEnd
)

// readTag accumulates everything recognized so far about the tag currently
// being read, from the opening '<' onward.
type readTag struct {
	begin           locality.Local[source.SourceEvent]
	raw             []locality.Local[source.SourceEvent]
	closing         Closing
	name            string
	void            bool
	attrs           []Attribute
	pendingAttrName string
	valueStart      int
}

// State is the tagger's state. Its zero value is kindInit.
type State struct {
	kind  kind
	angle locality.Local[source.SourceEvent]
	slash locality.Local[source.SourceEvent]
	read  readTag
}

// Machine implements the tag recognizer described in this package's doc
// comment. It is parameterized over Config for attribute-capture gating
// and EOF policy.
type Machine struct{}

var _ runtime.Machine[State, Tag, Config] = Machine{}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func tagNameChar(r rune) bool {
	return isASCIILetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ':' || r == '.'
}

func attrNameStart(r rune) bool {
	return tagNameChar(r) && r != '-' && r != '.'
}

func isTagWhitespace(ev locality.Local[source.SourceEvent]) bool {
	if ev.Inner.Kind == source.KindBreaker {
		return true
	}
	switch ev.Inner.Char {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

func asEvents(evs ...locality.Local[source.SourceEvent]) []locality.Local[parser.Event[Tag]] {
	out := make([]locality.Local[parser.Event[Tag]], len(evs))
	for i, e := range evs {
		out[i] = locality.Map(e, parser.FromSourceEvent[Tag])
	}
	return out
}

func asEventSlice(evs []locality.Local[source.SourceEvent]) []locality.Local[parser.Event[Tag]] {
	return asEvents(evs...)
}

// NextState implements runtime.Machine.
func (Machine) NextState(st State, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	switch st.kind {
	case kindInit:
		if ev.Inner.Kind == source.KindChar && ev.Inner.Char == '<' {
			return runtime.Next[State, Tag]{State: State{kind: kindMayBeTag, angle: ev}}, nil
		}
		return runtime.Next[State, Tag]{Events: asEvents(ev)}, nil

	case kindMayBeTag:
		return nextMayBeTag(st, ev)

	case kindSlashedTag:
		return nextSlashedTag(st, ev)

	case kindTagName:
		if ev.Inner.Kind == source.KindChar && tagNameChar(ev.Inner.Char) {
			read := st.read
			read.name += string(unicode.ToLower(ev.Inner.Char))
			read.raw = append(read.raw, ev)
			return runtime.Next[State, Tag]{State: State{kind: kindTagName, read: read}}, nil
		}
		return dispatchTagWaitAttrName(st.read, ev, cfg)

	case kindTagWaitAttrName:
		return dispatchTagWaitAttrName(st.read, ev, cfg)

	case kindTagWaitAttrEq:
		return nextTagWaitAttrEq(st, ev, cfg)

	case kindTagWaitAttrValue:
		return nextTagWaitAttrValue(st, ev, cfg)

	case kindTagAttrName:
		return nextTagAttrName(st, ev, cfg)

	case kindTagAttrValue:
		return nextTagAttrValue(st, ev, cfg)

	case kindTagAttrValueApos:
		return nextTagAttrValueQuoted(st, ev, '\'', kindTagAttrValueApos, cfg)

	case kindTagAttrValueQuote:
		return nextTagAttrValueQuoted(st, ev, '"', kindTagAttrValueQuote, cfg)

	case kindTagEnd:
		return nextTagEnd(st, ev)
	}

	return runtime.Next[State, Tag]{}, nil
}

func nextMayBeTag(st State, ev locality.Local[source.SourceEvent]) (runtime.Next[State, Tag], error) {
	isChar := ev.Inner.Kind == source.KindChar
	r := ev.Inner.Char
	switch {
	case isChar && r == '/':
		return runtime.Next[State, Tag]{State: State{kind: kindSlashedTag, angle: st.angle, slash: ev}}, nil
	case isChar && r == '!':
		read := readTag{begin: st.angle, raw: []locality.Local[source.SourceEvent]{st.angle, ev}, closing: Declaration}
		return runtime.Next[State, Tag]{State: State{kind: kindTagEnd, read: read}}, nil
	case isChar && r == '?':
		read := readTag{begin: st.angle, raw: []locality.Local[source.SourceEvent]{st.angle, ev}, closing: ProcessingInstruction}
		return runtime.Next[State, Tag]{State: State{kind: kindTagEnd, read: read}}, nil
	case isChar && isASCIILetter(r):
		read := readTag{
			begin:   st.angle,
			raw:     []locality.Local[source.SourceEvent]{st.angle, ev},
			closing: Open,
			name:    string(unicode.ToLower(r)),
		}
		return runtime.Next[State, Tag]{State: State{kind: kindTagName, read: read}}, nil
	case isChar && r == '<':
		return runtime.Next[State, Tag]{
			State:  State{kind: kindMayBeTag, angle: ev},
			Events: asEvents(st.angle),
		}, nil
	default:
		return runtime.Next[State, Tag]{
			State:  State{kind: kindInit},
			Events: asEvents(st.angle, ev),
		}, nil
	}
}

func nextSlashedTag(st State, ev locality.Local[source.SourceEvent]) (runtime.Next[State, Tag], error) {
	if ev.Inner.Kind == source.KindChar && isASCIILetter(ev.Inner.Char) {
		read := readTag{
			begin:   st.angle,
			raw:     []locality.Local[source.SourceEvent]{st.angle, st.slash, ev},
			closing: Close,
			name:    string(unicode.ToLower(ev.Inner.Char)),
		}
		return runtime.Next[State, Tag]{State: State{kind: kindTagName, read: read}}, nil
	}
	return runtime.Next[State, Tag]{
		State:  State{kind: kindInit},
		Events: asEvents(st.angle, st.slash, ev),
	}, nil
}

// dispatchTagWaitAttrName handles "between attributes" dispatch: skip
// whitespace, toggle void on '/', close the tag on '>', or start a new
// attribute name. It is reachable both from kindTagWaitAttrName directly
// and from any state that just finished an attribute (name or value) and
// needs to reconsider the same triggering event.
func dispatchTagWaitAttrName(read readTag, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	if isTagWhitespace(ev) {
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrName, read: read}}, nil
	}
	r := ev.Inner.Char
	switch {
	case ev.Inner.Kind == source.KindChar && r == '/':
		read.void = true
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrName, read: read}}, nil
	case ev.Inner.Kind == source.KindChar && r == '>':
		spanned, err := buildTag(read, ev)
		if err != nil {
			return runtime.Next[State, Tag]{}, err
		}
		return runtime.Next[State, Tag]{State: State{kind: kindInit}, Events: []locality.Local[parser.Event[Tag]]{spanned}}, nil
	case ev.Inner.Kind == source.KindChar && attrNameStart(r):
		read.raw = append(read.raw, ev)
		read.pendingAttrName = string(unicode.ToLower(r))
		return runtime.Next[State, Tag]{State: State{kind: kindTagAttrName, read: read}}, nil
	default:
		// Stray character inside the tag body with no defined meaning:
		// keep it in raw so reconstruction stays exact, stay put.
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrName, read: read}}, nil
	}
}

func nextTagAttrName(st State, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	read := st.read
	isChar := ev.Inner.Kind == source.KindChar
	r := ev.Inner.Char
	switch {
	case isChar && tagNameChar(r):
		read.pendingAttrName += string(unicode.ToLower(r))
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagAttrName, read: read}}, nil
	case isChar && r == '=':
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrValue, read: read}}, nil
	case isTagWhitespace(ev):
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrEq, read: read}}, nil
	default:
		read = finalizeValuelessAttr(read, cfg)
		return dispatchTagWaitAttrName(read, ev, cfg)
	}
}

func nextTagWaitAttrEq(st State, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	read := st.read
	if isTagWhitespace(ev) {
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrEq, read: read}}, nil
	}
	if ev.Inner.Kind == source.KindChar && ev.Inner.Char == '=' {
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrValue, read: read}}, nil
	}
	read = finalizeValuelessAttr(read, cfg)
	return dispatchTagWaitAttrName(read, ev, cfg)
}

func nextTagWaitAttrValue(st State, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	read := st.read
	isChar := ev.Inner.Kind == source.KindChar
	switch {
	case isChar && ev.Inner.Char == '\'':
		read.raw = append(read.raw, ev)
		read.valueStart = len(read.raw)
		return runtime.Next[State, Tag]{State: State{kind: kindTagAttrValueApos, read: read}}, nil
	case isChar && ev.Inner.Char == '"':
		read.raw = append(read.raw, ev)
		read.valueStart = len(read.raw)
		return runtime.Next[State, Tag]{State: State{kind: kindTagAttrValueQuote, read: read}}, nil
	case isTagWhitespace(ev) || (isChar && (ev.Inner.Char == '/' || ev.Inner.Char == '>')):
		// Empty unquoted value (e.g. attr= followed immediately by a
		// terminator).
		read = finalizeValueAttr(read, cfg, len(read.raw), len(read.raw))
		return dispatchTagWaitAttrName(read, ev, cfg)
	default:
		// Any other char, including an apostrophe look-alike that is not
		// exactly ASCII ' or " (Open Question 3), starts an unquoted value.
		read.valueStart = len(read.raw)
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagAttrValue, read: read}}, nil
	}
}

func nextTagAttrValue(st State, ev locality.Local[source.SourceEvent], cfg Config) (runtime.Next[State, Tag], error) {
	read := st.read
	isChar := ev.Inner.Kind == source.KindChar
	if isTagWhitespace(ev) || (isChar && (ev.Inner.Char == '/' || ev.Inner.Char == '>')) {
		read = finalizeValueAttr(read, cfg, read.valueStart, len(read.raw))
		return dispatchTagWaitAttrName(read, ev, cfg)
	}
	read.raw = append(read.raw, ev)
	return runtime.Next[State, Tag]{State: State{kind: kindTagAttrValue, read: read}}, nil
}

func nextTagAttrValueQuoted(st State, ev locality.Local[source.SourceEvent], quote rune, selfKind kind, cfg Config) (runtime.Next[State, Tag], error) {
	read := st.read
	if ev.Inner.Kind == source.KindChar && ev.Inner.Char == quote {
		read = finalizeValueAttr(read, cfg, read.valueStart, len(read.raw))
		read.raw = append(read.raw, ev)
		return runtime.Next[State, Tag]{State: State{kind: kindTagWaitAttrName, read: read}}, nil
	}
	read.raw = append(read.raw, ev)
	return runtime.Next[State, Tag]{State: State{kind: selfKind, read: read}}, nil
}

func nextTagEnd(st State, ev locality.Local[source.SourceEvent]) (runtime.Next[State, Tag], error) {
	read := st.read
	if ev.Inner.Kind == source.KindChar && ev.Inner.Char == '>' {
		read.raw = append(read.raw, ev)
		spanned, err := locality.FromSegment(read.begin.Span(), ev.Span(), parser.ParsedEvent[Tag](Tag{
			Name:    TagName{},
			Closing: read.closing,
			Begin:   locality.WithInner(read.begin, struct{}{}),
			End:     locality.WithInner(ev, struct{}{}),
			Raw:     read.raw,
		}))
		if err != nil {
			return runtime.Next[State, Tag]{}, err
		}
		return runtime.Next[State, Tag]{State: State{kind: kindInit}, Events: []locality.Local[parser.Event[Tag]]{spanned}}, nil
	}
	read.raw = append(read.raw, ev)
	return runtime.Next[State, Tag]{State: State{kind: kindTagEnd, read: read}}, nil
}

func finalizeValuelessAttr(read readTag, cfg Config) readTag {
	if read.pendingAttrName != "" && cfg.wantsAttr(read.name, read.pendingAttrName) {
		read.attrs = append(read.attrs, Attribute{Name: read.pendingAttrName})
	}
	read.pendingAttrName = ""
	return read
}

func finalizeValueAttr(read readTag, cfg Config, start, end int) readTag {
	if read.pendingAttrName != "" && cfg.wantsAttr(read.name, read.pendingAttrName) {
		snip := &rawSnip{index: start, length: end - start}
		read.attrs = append(read.attrs, Attribute{Name: read.pendingAttrName, value: snip})
	}
	read.pendingAttrName = ""
	return read
}

func buildTag(read readTag, end locality.Local[source.SourceEvent]) (locality.Local[parser.Event[Tag]], error) {
	read.raw = append(read.raw, end)
	closing := read.closing
	if closing == Open && (read.void || isVoidTagName(read.name)) {
		closing = VoidClosing
	}
	return locality.FromSegment(read.begin.Span(), end.Span(), parser.ParsedEvent[Tag](Tag{
		Name:       NewTagName(read.name),
		Closing:    closing,
		Attributes: read.attrs,
		Begin:      locality.WithInner(read.begin, struct{}{}),
		End:        locality.WithInner(end, struct{}{}),
		Raw:        read.raw,
	}))
}
