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
	"fmt"

	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/source"
)

// EofInTag reports that the source ended while a tag was still open. Raw
// carries every source event buffered since the opening '<', letting a
// caller decide whether to surface, discard, or re-emit it as text.
type EofInTag struct {
	Raw []locality.Local[source.SourceEvent]
}

func (e EofInTag) Error() string {
	return fmt.Sprintf("tagger: source ended mid-tag after %d buffered events", len(e.Raw))
}
