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

// Package pipeline wires the stages (entity decoding, paragraph detection,
// whitespace classification, tag recognition) into the single
// Source -> Parser[Tag] composition a
// caller actually wants, the way the teacher's own chain.go/glue.go wire a
// Processor out of smaller Transformations.
package pipeline

import (
	"github.com/oskarpol/streammark/pkg/entity"
	"github.com/oskarpol/streammark/pkg/paragraph"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/runtime"
	"github.com/oskarpol/streammark/pkg/source"
	"github.com/oskarpol/streammark/pkg/tagger"
)

// Config controls how the composed pipeline recognizes tags. AutoDetect,
// when non-nil, runs the auto-detect front-end with these thresholds
// instead of a plain tagger.Machine.
type Config struct {
	Tagger     tagger.Config
	Entities   *entity.Table
	AutoDetect *tagger.Thresholds
}

// DefaultConfig builds a Config using the package's curated entity table
// and no auto-detect (tags are always recognized as Xhtml).
func DefaultConfig() Config {
	return Config{Entities: entity.NewTable()}
}

// flattenEntity turns a resolved Entity back into the plain chars it
// decoded to, for splicing back into the char/breaker stream ahead of
// paragraph detection and tag recognition.
func flattenEntity(e entity.Entity) []source.SourceEvent {
	runes := e.Resolved.Runes()
	events := make([]source.SourceEvent, len(runes))
	for i, r := range runes {
		events[i] = source.CharEvent(r)
	}
	return events
}

// Pipeline is a ready-to-drain composition: entity decoding, then
// paragraph detection (re-expressed as a Paragraph breaker), then
// IntoSeparator/MergeSeparator (whitespace chars become merged breakers),
// then tag recognition, over a single upstream Source.
type Pipeline struct {
	src    source.Source
	tagger parser.Parser[tagger.Tag]
}

// New builds a Pipeline over src using cfg. A nil *entity.Table in cfg
// falls back to entity.NewTable().
func New(src source.Source, cfg Config) *Pipeline {
	table := cfg.Entities
	if table == nil {
		table = entity.NewTable()
	}

	// Entity decoding and paragraph detection both want to see raw chars
	// ('&', '\n') before IntoSeparator reclassifies whitespace into
	// Breakers — otherwise MergeSeparator would already have coalesced a
	// blank line's two line breaks into one breaker, leaving paragraph
	// detection nothing to pair up.
	entityParser := runtime.NewDriver[entity.State, entity.Entity, *entity.Table](entity.Machine{}, entity.State{}, table)
	afterEntities := source.Pipe(src, parser.PipedWith(entityParser, flattenEntity))

	paragraphParser := runtime.NewDriver[paragraph.State, paragraph.Paragraph, struct{}](paragraph.Machine{}, paragraph.State{}, struct{}{})
	afterParagraphs := source.Pipe(afterEntities, parser.PipeBreaker[paragraph.Paragraph](paragraphParser))

	separated := source.NewMergeSeparator(source.NewIntoSeparator(afterParagraphs))

	var tags parser.Parser[tagger.Tag]
	if cfg.AutoDetect != nil {
		tags = tagger.NewAutoDetect(cfg.Tagger, *cfg.AutoDetect)
	} else {
		tags = runtime.NewDriver[tagger.State, tagger.Tag, tagger.Config](tagger.Machine{}, tagger.State{}, cfg.Tagger)
	}

	return &Pipeline{src: separated, tagger: tags}
}

// NewFromString is a convenience constructor building a Pipeline over a
// plain string, the common case for callers without their own Source.
func NewFromString(text string, cfg Config) *Pipeline {
	return New(source.NewStrSource(text), cfg)
}

// Next pulls the next event out of the composed pipeline.
func (p *Pipeline) Next() (parser.Event[tagger.Tag], bool, error) {
	ev, ok, err := p.tagger.NextEvent(p.src)
	if err != nil || !ok {
		return parser.Event[tagger.Tag]{}, ok, err
	}
	return ev.Inner, true, nil
}

// Drain pulls every remaining event out of the pipeline. It is a test and
// demo convenience, not meant for unbounded streams.
func (p *Pipeline) Drain() ([]parser.Event[tagger.Tag], error) {
	var out []parser.Event[tagger.Tag]
	for {
		ev, ok, err := p.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, ev)
	}
}
