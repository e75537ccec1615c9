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
	"testing"

	"github.com/oskarpol/streammark/pkg/locality"
)

func drain(t *testing.T, s Source) []locality.Local[SourceEvent] {
	t.Helper()
	var out []locality.Local[SourceEvent]
	for {
		ev, ok, err := s.NextChar()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestStrSourceByteSpans(t *testing.T) {
	s := NewStrSource("aéb") // 'a', 'é' (2 bytes), 'b'
	events := drain(t, s)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	want := []locality.Snip{
		{Offset: 0, Length: 1},
		{Offset: 1, Length: 2},
		{Offset: 3, Length: 1},
	}
	for i, ev := range events {
		if ev.ByteSnip != want[i] {
			t.Errorf("event %d ByteSnip = %+v, want %+v", i, ev.ByteSnip, want[i])
		}
		if ev.CharSnip.Offset != i {
			t.Errorf("event %d CharSnip.Offset = %d, want %d", i, ev.CharSnip.Offset, i)
		}
	}
	p := s.Processed()
	if p.Chars != 3 || p.Bytes != 4 {
		t.Fatalf("Processed() = %+v, want {3 4}", p)
	}
}

func TestChainProcessedIsAdditive(t *testing.T) {
	a := NewStrSource("abc")
	b := NewStrSource("defgh")
	c := NewChain(a, b)
	drain(t, c)
	got := c.Processed()
	want := a.Processed().Add(b.Processed())
	if got != want {
		t.Fatalf("Chain.Processed() = %+v, want %+v", got, want)
	}
}

func TestChainShiftsSecondSourceOffsets(t *testing.T) {
	a := NewStrSource("ab")
	b := NewStrSource("cd")
	c := NewChain(a, b)
	events := drain(t, c)
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	for i, ev := range events {
		if ev.CharSnip.Offset != i {
			t.Errorf("event %d CharSnip.Offset = %d, want %d", i, ev.CharSnip.Offset, i)
		}
	}
}

func TestFilterDropsCharsKeepsBreakers(t *testing.T) {
	breaker := locality.Local[SourceEvent]{
		CharSnip: locality.Snip{Offset: 0, Length: 1},
		ByteSnip: locality.Snip{Offset: 0, Length: 1},
		Inner:    BreakerEvent(Word),
	}
	base := NewChain(NewStrSource("a1b2"), NewOptSource(breaker))
	f := NewFilter(base, func(r rune) bool { return r < '0' || r > '9' })
	events := drain(t, f)
	var got string
	for _, ev := range events {
		if ev.Inner.Kind == KindChar {
			got += string(ev.Inner.Char)
		}
	}
	if got != "ab" {
		t.Fatalf("Filter() = %q, want %q", got, "ab")
	}
	if len(events) != 3 || events[2].Inner.Kind != KindBreaker || events[2].Inner.Breaker != Word {
		t.Fatalf("Filter() = %+v, want the Word breaker kept after the chars", events)
	}
}

func TestMapCharRewritesOnlyChars(t *testing.T) {
	base := NewStrSource("abc")
	m := NewMapChar(base, func(r rune) rune { return r - 32 })
	events := drain(t, m)
	var got string
	for _, ev := range events {
		got += string(ev.Inner.Char)
	}
	if got != "ABC" {
		t.Fatalf("MapChar() = %q, want %q", got, "ABC")
	}
}

func TestIntoSeparatorClassifiesWhitespace(t *testing.T) {
	base := NewStrSource("a\nb c")
	sep := NewIntoSeparator(base)
	events := drain(t, sep)
	kinds := make([]Kind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Inner.Kind
	}
	want := []Kind{KindChar, KindBreaker, KindChar, KindBreaker, KindChar}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
	if events[1].Inner.Breaker != Line {
		t.Errorf("'\\n' classified as %v, want Line", events[1].Inner.Breaker)
	}
	if events[3].Inner.Breaker != Space {
		t.Errorf("' ' classified as %v, want Space", events[3].Inner.Breaker)
	}
}

// TestChainedIntoSeparatorMergeSeparator exercises end-to-end scenario 6 from
// spec.md §8: "abc" ++ Breaker(Word) ++ "def" through
// IntoSeparator -> MergeSeparator yields three chars, one Word breaker
// spanning the splice, three chars, with correctly shifted spans.
func TestChainedIntoSeparatorMergeSeparator(t *testing.T) {
	a := NewStrSource("abc")
	breakerEvent := locality.Local[SourceEvent]{
		CharSnip: locality.Snip{Offset: 0, Length: 1},
		ByteSnip: locality.Snip{Offset: 0, Length: 1},
		Inner:    BreakerEvent(Word),
	}
	spliced := NewChain(a, NewOptSource(breakerEvent))
	b := NewStrSource("def")
	full := NewChain(spliced, b)

	pipeline := NewMergeSeparator(NewIntoSeparator(full))
	events := drain(t, pipeline)

	if len(events) != 7 {
		t.Fatalf("got %d events, want 7", len(events))
	}
	wantKinds := []Kind{KindChar, KindChar, KindChar, KindBreaker, KindChar, KindChar, KindChar}
	for i, ev := range events {
		if ev.Inner.Kind != wantKinds[i] {
			t.Fatalf("event %d kind = %v, want %v", i, ev.Inner.Kind, wantKinds[i])
		}
	}
	if events[3].Inner.Breaker != Word {
		t.Fatalf("breaker = %v, want Word", events[3].Inner.Breaker)
	}
	if events[4].CharSnip.Offset != 4 {
		t.Fatalf("'d' CharSnip.Offset = %d, want 4", events[4].CharSnip.Offset)
	}
}

func TestMergeSeparatorMergesToHigherBreaker(t *testing.T) {
	base := NewStrSource("a \n\nb")
	sep := NewIntoSeparator(base)
	merged := NewMergeSeparator(sep)
	events := drain(t, merged)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3 (a, merged-breaker, b), got %#v", len(events), events)
	}
	if events[1].Inner.Kind != KindBreaker || events[1].Inner.Breaker != Line {
		t.Fatalf("merged breaker = %+v, want Line", events[1].Inner)
	}
}

func TestPipe(t *testing.T) {
	base := NewStrSource("xy")
	p := Pipe(base, passthroughPipeParser{})
	events := drain(t, p)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

type passthroughPipeParser struct{}

func (passthroughPipeParser) NextFrom(src Source) (locality.Local[SourceEvent], bool, error) {
	return src.NextChar()
}
