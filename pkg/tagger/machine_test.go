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
	"errors"
	"strings"
	"testing"

	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/runtime"
	"github.com/oskarpol/streammark/pkg/source"
)

func run(t *testing.T, input string, cfg Config) []parser.Event[Tag] {
	t.Helper()
	src := source.NewStrSource(input)
	d := runtime.NewDriver[State, Tag, Config](Machine{}, State{}, cfg)
	var out []parser.Event[Tag]
	for {
		ev, ok, err := d.NextEvent(src)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if !ok {
			return out
		}
		out = append(out, ev.Inner)
	}
}

func renderChars(events []parser.Event[Tag]) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Kind == parser.KindChar {
			b.WriteRune(ev.Char)
		}
	}
	return b.String()
}

// TestScenarioTwo exercises spec.md §8 end-to-end scenario 2.
func TestScenarioTwo(t *testing.T) {
	events := run(t, "<h1>Hello, world!</h1>Привет, мир!", Config{})
	if len(events) < 2 {
		t.Fatalf("got %d events, want at least 2 tags", len(events))
	}
	first := events[0]
	if first.Kind != parser.KindParsed || first.Parsed.Name.String() != "h1" || first.Parsed.Closing != Open {
		t.Fatalf("event 0 = %+v, want Parsed(h1 Open)", first)
	}
	last := events[len(events)-1]
	var closeIdx = -1
	for i, ev := range events {
		if ev.Kind == parser.KindParsed && ev.Parsed.Closing == Close {
			closeIdx = i
		}
	}
	if closeIdx == -1 {
		t.Fatalf("no closing tag found in %#v", events)
	}
	if events[closeIdx].Parsed.Name.String() != "h1" {
		t.Fatalf("closing tag name = %q, want h1", events[closeIdx].Parsed.Name.String())
	}
	text := renderChars(events)
	if text != "Hello, world!Привет, мир!" {
		t.Fatalf("text = %q, want %q", text, "Hello, world!Привет, мир!")
	}
	_ = last
}

func TestVoidTagForcedClosingRegardlessOfSlash(t *testing.T) {
	events := run(t, "<br>", Config{})
	if len(events) != 1 || events[0].Kind != parser.KindParsed || events[0].Parsed.Closing != VoidClosing {
		t.Fatalf("got %#v, want single Parsed(br Void)", events)
	}
}

func TestSelfClosingTagIsVoid(t *testing.T) {
	events := run(t, "<custom/>", Config{})
	if len(events) != 1 || events[0].Parsed.Closing != VoidClosing {
		t.Fatalf("got %#v, want Parsed(custom Void)", events)
	}
	if events[0].Parsed.Name.String() != "custom" {
		t.Fatalf("name = %q, want custom", events[0].Parsed.Name.String())
	}
}

func TestAttributeCaptureAllQuotedAndUnquoted(t *testing.T) {
	cfg := Config{Capture: CaptureAll}
	events := run(t, `<a href="x" target=_blank disabled>`, cfg)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	tag := events[0].Parsed
	if len(tag.Attributes) != 3 {
		t.Fatalf("got %d attributes, want 3: %#v", len(tag.Attributes), tag.Attributes)
	}
	href, ok := tag.AttrValue("href")
	if !ok || href != "x" {
		t.Fatalf("href = (%q, %v), want (x, true)", href, ok)
	}
	target, ok := tag.AttrValue("target")
	if !ok || target != "_blank" {
		t.Fatalf("target = (%q, %v), want (_blank, true)", target, ok)
	}
	disabled, ok := tag.AttrValue("disabled")
	if !ok || disabled != "" {
		t.Fatalf("disabled = (%q, %v), want (\"\", true)", disabled, ok)
	}
}

func TestAttributeCaptureNoneCapturesNothing(t *testing.T) {
	events := run(t, `<a href="x">`, Config{Capture: CaptureNone})
	if len(events[0].Parsed.Attributes) != 0 {
		t.Fatalf("got %d attributes, want 0", len(events[0].Parsed.Attributes))
	}
}

func TestAttributeCaptureCustomFiltersByTagAndName(t *testing.T) {
	cfg := Config{Capture: CaptureCustom, Custom: map[string][]string{"a": {"href"}}}
	events := run(t, `<a href="x" title="y">`, cfg)
	if len(events[0].Parsed.Attributes) != 1 || events[0].Parsed.Attributes[0].Name != "href" {
		t.Fatalf("got %#v, want only href captured", events[0].Parsed.Attributes)
	}
}

func TestEmptyQuotedAttributeValueIsZeroWidth(t *testing.T) {
	events := run(t, `<a href="">`, Config{Capture: CaptureAll})
	v, ok := events[0].Parsed.AttrValue("href")
	if !ok || v != "" {
		t.Fatalf("href = (%q, %v), want (\"\", true)", v, ok)
	}
}

func TestUnicodeApostropheLookalikeTreatedAsUnquoted(t *testing.T) {
	// Open Question 3: U+2018 is not ASCII ' or ", so it starts an
	// unquoted value that terminates on the next whitespace/'/'/'>'.
	cfg := Config{Capture: CaptureAll}
	events := run(t, "<a title=‘x>", cfg)
	v, ok := events[0].Parsed.AttrValue("title")
	if !ok {
		t.Fatalf("expected title attribute to be captured")
	}
	if v != "‘x" {
		t.Fatalf("title = %q, want %q", v, "‘x")
	}
}

func TestTagRawReconstructsExactSourceSlice(t *testing.T) {
	events := run(t, `<a href="x">`, Config{Capture: CaptureAll})
	var raw strings.Builder
	for _, ev := range events[0].Parsed.Raw {
		raw.WriteString(ev.Inner.String())
	}
	if raw.String() != `<a href="x">` {
		t.Fatalf("Raw reconstructs as %q, want %q", raw.String(), `<a href="x">`)
	}
}

func TestDeclarationAndProcessingInstructionPassThrough(t *testing.T) {
	events := run(t, "<!DOCTYPE html><?xml version=\"1.0\"?>", Config{})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2, got %#v", len(events), events)
	}
	if events[0].Parsed.Closing != Declaration {
		t.Fatalf("event 0 closing = %v, want Declaration", events[0].Parsed.Closing)
	}
	if events[1].Parsed.Closing != ProcessingInstruction {
		t.Fatalf("event 1 closing = %v, want ProcessingInstruction", events[1].Parsed.Closing)
	}
}

func TestEofInTagErrorPolicy(t *testing.T) {
	src := source.NewStrSource("<a href=\"unterminated")
	d := runtime.NewDriver[State, Tag, Config](Machine{}, State{}, Config{Eof: EofError})
	var sawErr error
	for {
		_, ok, err := d.NextEvent(src)
		if err != nil {
			sawErr = err
			break
		}
		if !ok {
			break
		}
	}
	if sawErr == nil {
		t.Fatalf("expected EofInTag error")
	}
	var eofErr EofInTag
	if !errors.As(sawErr, &eofErr) {
		t.Fatalf("error %v is not EofInTag", sawErr)
	}
}

func TestEofInTagSkipPolicyDropsBufferedEvents(t *testing.T) {
	events := run(t, "abc<a href=\"unterminated", Config{Eof: EofSkip})
	if renderChars(events) != "abc" {
		t.Fatalf("got %q, want %q", renderChars(events), "abc")
	}
}

func TestEofInTagTextPolicyReemitsAsChars(t *testing.T) {
	events := run(t, "abc<di", Config{Eof: EofText})
	if renderChars(events) != "abc<di" {
		t.Fatalf("got %q, want %q", renderChars(events), "abc<di")
	}
	for _, ev := range events {
		if ev.Kind == parser.KindParsed {
			t.Fatalf("did not expect a Parsed event, got %+v", ev)
		}
	}
}

// TestScenarioFour exercises spec.md §8 end-to-end scenario 4: strict-mode
// tagging over C++-like source raises EofInTag once it gets stuck trying
// to close the "<<endl;" false tag start.
func TestScenarioFour(t *testing.T) {
	input := "#include<iostream>\nusing namespace std;\ncout<<\"Hello world!\"<<endl;\n"
	src := source.NewStrSource(input)
	d := runtime.NewDriver[State, Tag, Config](Machine{}, State{}, Config{Eof: EofError})
	var sawErr error
	for {
		_, ok, err := d.NextEvent(src)
		if err != nil {
			sawErr = err
			break
		}
		if !ok {
			break
		}
	}
	if sawErr == nil {
		t.Fatalf("expected EofInTag once the trailing '<<endl;' tag attempt never closes")
	}
	var eofErr EofInTag
	if !errors.As(sawErr, &eofErr) {
		t.Fatalf("error %v is not EofInTag", sawErr)
	}
}
