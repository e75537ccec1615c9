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

// Package tagger recognizes tag structures (<tag …>, </tag>, <tag/>, <!…>,
// <?…>) in a SourceEvent stream, with optional attribute-span capture, a
// Plain/Xhtml auto-detect front-end, and three EOF-in-tag recovery
// policies.
package tagger

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/source"
)

// Closing discriminates how a Tag closes.
type Closing int

const (
	Open Closing = iota
	Close
	VoidClosing
	Declaration           // <! ... >
	ProcessingInstruction // <? ... >
)

func (c Closing) String() string {
	switch c {
	case Open:
		return "Open"
	case Close:
		return "Close"
	case VoidClosing:
		return "Void"
	case Declaration:
		return "Declaration"
	case ProcessingInstruction:
		return "ProcessingInstruction"
	default:
		return "Unknown"
	}
}

// TagName is the opaque tag-name-dictionary lookup result: known HTML tag
// names resolve to the shared golang.org/x/net/html/atom table, everything
// else is carried as Other.
type TagName struct {
	atom  atom.Atom
	other string
}

// NewTagName resolves lower (already lowercased) against the atom table.
func NewTagName(lower string) TagName {
	if a := atom.Lookup([]byte(lower)); a != 0 {
		return TagName{atom: a}
	}
	return TagName{other: lower}
}

// String returns the tag name's lowercase text.
func (t TagName) String() string {
	if t.atom != 0 {
		return t.atom.String()
	}
	return t.other
}

// IsOther reports whether the name fell outside the known-tag dictionary.
func (t TagName) IsOther() bool { return t.atom == 0 }

var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "command": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

func isVoidTagName(name string) bool {
	_, ok := voidTags[name]
	return ok
}

// rawSnip indexes a contiguous run of Tag.Raw, rather than owning a copied
// string: attribute values resolve lazily by re-walking Raw (spec.md §9's
// "arenas and indices" note).
type rawSnip struct {
	index  int
	length int
}

// Attribute is one captured (name, value) pair. Value is nil for a
// valueless attribute (present with no '=').
type Attribute struct {
	Name  string
	value *rawSnip
}

// Tag is a recognized tag structure: its name, how it closes, any captured
// attributes, its begin/end markers, and the raw source events consumed
// from '<' through '>' inclusive.
type Tag struct {
	Name       TagName
	Closing    Closing
	Attributes []Attribute
	Begin      locality.Local[struct{}]
	End        locality.Local[struct{}]
	Raw        []locality.Local[source.SourceEvent]
}

// AttrValue lazily resolves the value text of the named attribute by
// re-walking Raw. ok is false if the attribute was not captured at all;
// when ok is true and the attribute was valueless, value is "".
func (t Tag) AttrValue(name string) (value string, ok bool) {
	for _, a := range t.Attributes {
		if a.Name != name {
			continue
		}
		if a.value == nil {
			return "", true
		}
		var b strings.Builder
		for i := a.value.index; i < a.value.index+a.value.length; i++ {
			b.WriteString(t.Raw[i].Inner.String())
		}
		return b.String(), true
	}
	return "", false
}

// ToBreaker lets a Tag flow through parser.PipeBreaker in Plain/elided
// rendering modes that only care that *something* structural happened at
// this position; Xhtml-mode consumers should use PartialPipedWith instead
// to keep the full Tag datum.
func (t Tag) ToBreaker() source.Breaker {
	return source.Word
}
