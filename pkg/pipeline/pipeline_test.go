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

package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/source"
	"github.com/oskarpol/streammark/pkg/tagger"
)

// tagSummary is a plain, fully-exported projection of a recognized tag,
// used with go-cmp so a sequence of tags can be diffed at once instead of
// asserting on each field by hand.
type tagSummary struct {
	Name    string
	Closing string
}

func tagSummaries(events []parser.Event[tagger.Tag]) []tagSummary {
	var out []tagSummary
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			out = append(out, tagSummary{Name: ev.Parsed.Name.String(), Closing: ev.Parsed.Closing.String()})
		}
	}
	return out
}

// TestTagSequenceMatchesExpectedSummaries diffs the whole recognized-tag
// sequence at once with go-cmp, rather than asserting field by field.
func TestTagSequenceMatchesExpectedSummaries(t *testing.T) {
	p := NewFromString(`<ul><li class="a">one</li><li>two</li></ul>`, DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tagSummary{
		{Name: "ul", Closing: "Open"},
		{Name: "li", Closing: "Open"},
		{Name: "li", Closing: "Close"},
		{Name: "li", Closing: "Open"},
		{Name: "li", Closing: "Close"},
		{Name: "ul", Closing: "Close"},
	}
	if diff := cmp.Diff(want, tagSummaries(events)); diff != "" {
		t.Fatalf("tag sequence mismatch (-want +got):\n%s", diff)
	}
}

func render(events []parser.Event[tagger.Tag]) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Kind == parser.KindChar {
			b.WriteRune(ev.Char)
		}
	}
	return b.String()
}

// TestRoundTripNoTagsNoEntities exercises the spec's round-trip law: plain
// text with no tags and no entities comes back unchanged, char for char.
func TestRoundTripNoTagsNoEntities(t *testing.T) {
	input := "just plain text, nothing special here."
	p := NewFromString(input, DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			t.Fatalf("did not expect a Parsed event in plain text, got %#v", events)
		}
	}
	if render(events) != input {
		t.Fatalf("got %q, want %q", render(events), input)
	}
}

func TestEmptyInputYieldsNoEvents(t *testing.T) {
	p := NewFromString("", DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}

func TestWhitespaceOnlyInputPassesThrough(t *testing.T) {
	p := NewFromString("   \t  ", DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			t.Fatalf("did not expect a Parsed event, got %#v", events)
		}
	}
}

func TestBOMPrefixedInputIsPreservedAsALiteralChar(t *testing.T) {
	input := "\xef\xbb\xbfhello" // U+FEFF byte order mark, then "hello"
	p := NewFromString(input, DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if render(events) != input {
		t.Fatalf("got %q, want %q", render(events), input)
	}
}

// TestEntitiesAndTagsCompose exercises the full pipeline end to end: an
// entity inside a tag-free text run is decoded, and a tag elsewhere is
// still recognized.
func TestEntitiesAndTagsCompose(t *testing.T) {
	p := NewFromString("<b>Tom &AMP; Jerry</b>", DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var openSeen, closeSeen bool
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			switch ev.Parsed.Closing {
			case tagger.Open:
				openSeen = true
			case tagger.Close:
				closeSeen = true
			}
		}
	}
	if !openSeen || !closeSeen {
		t.Fatalf("expected both an opening and closing <b> tag, got %#v", events)
	}
	if render(events) != "Tom & Jerry" {
		t.Fatalf("text = %q, want %q", render(events), "Tom & Jerry")
	}
}

// TestParagraphSurfacesAsBreakerAcrossTagBoundary exercises the paragraph
// stage feeding the tagger a Paragraph breaker via PipeBreaker.
func TestParagraphSurfacesAsBreakerAcrossTagBoundary(t *testing.T) {
	p := NewFromString("<p>one</p>\n\n<p>two</p>", DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawParagraphBreaker bool
	for _, ev := range events {
		if ev.Kind == parser.KindBreaker && ev.Breaker == source.Paragraph {
			sawParagraphBreaker = true
		}
	}
	if !sawParagraphBreaker {
		t.Fatalf("expected the blank line to surface as a Paragraph breaker event, got %#v", events)
	}
}

// TestCarriageReturnLineFeedParagraphBoundary covers the \r\n\r\n boundary
// case named in spec.md §8: the two line feeds still pair up into a single
// paragraph break even with a '\r' riding along before each one.
func TestCarriageReturnLineFeedParagraphBoundary(t *testing.T) {
	p := NewFromString("first\r\n\r\nsecond", DefaultConfig())
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawBreak bool
	for _, ev := range events {
		if ev.Kind == parser.KindBreaker && ev.Breaker == source.Paragraph {
			sawBreak = true
		}
	}
	if !sawBreak {
		t.Fatalf("expected the blank line to surface as a Paragraph breaker event, got %#v", events)
	}
	text := render(events)
	if !strings.HasPrefix(text, "first") || !strings.HasSuffix(text, "second") {
		t.Fatalf("got %q, want text bracketing the break to read first...second", text)
	}
}

func TestAutoDetectFallsBackToPlainOnNonMarkupInput(t *testing.T) {
	cfg := DefaultConfig()
	thresholds := tagger.DefaultThresholds()
	cfg.AutoDetect = &thresholds
	input := "#include<iostream>\nusing namespace std;\n"
	p := NewFromString(input, cfg)
	events, err := p.Drain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			t.Fatalf("expected Plain mode to re-expand every tag attempt as literal chars, got %#v", events)
		}
	}
	if render(events) != input {
		t.Fatalf("got %q, want %q", render(events), input)
	}
}
