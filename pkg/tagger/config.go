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

// CaptureMode gates which attributes the tagger bothers capturing spans
// for; tags whose attributes are never inspected don't pay for the
// bookkeeping.
type CaptureMode int

const (
	// CaptureNone never captures attributes.
	CaptureNone CaptureMode = iota
	// CaptureAll captures every attribute on every tag.
	CaptureAll
	// CaptureCustom captures only the attribute names configured per tag
	// via Config.Custom.
	CaptureCustom
)

// EofPolicy selects how the tagger reacts to the source ending mid-tag.
type EofPolicy int

const (
	// EofError surfaces an EofInTag error carrying the buffered raw events.
	EofError EofPolicy = iota
	// EofSkip swallows the buffered raw events silently.
	EofSkip
	// EofText re-emits every buffered raw event as a Char or Breaker,
	// preserving spans, as if no tag had been attempted.
	EofText
)

// Config builds a Machine. The zero Config captures no attributes and
// errors on EOF-in-tag, matching a "strict" reading of markup.
type Config struct {
	Capture CaptureMode
	// Custom maps a lowercase tag name to the lowercase attribute names to
	// capture for it; only consulted when Capture == CaptureCustom.
	Custom map[string][]string
	Eof    EofPolicy
}

func (c Config) wantsAttr(tagName, attrName string) bool {
	switch c.Capture {
	case CaptureAll:
		return true
	case CaptureCustom:
		for _, want := range c.Custom[tagName] {
			if want == attrName {
				return true
			}
		}
		return false
	default:
		return false
	}
}
