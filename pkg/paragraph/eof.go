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
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
)

// Eof implements runtime.Machine: a buffered First(buf) run that never saw
// its second line break is flushed as ordinary pass-through events.
func (Machine) Eof(st State, ctx struct{}) ([]locality.Local[parser.Event[Paragraph]], error) {
	if st.kind != kindFirst {
		return nil, nil
	}
	return asEventSlice(st.buf), nil
}
