// This file is part of the TI-84 CE emulator project.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package comparator

import "fmt"

// Kind classifies a divergence. The three kinds are located independently of
// one another during a scan.
type Kind int

// List of Kind values. The declaration order is the tie-break order when two
// kinds are located at the same aligned point.
const (
	KindControlFlow Kind = iota
	KindRegister
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindControlFlow:
		return "control-flow"
	case KindRegister:
		return "register"
	case KindIO:
		return "i/o"
	}
	return "unknown"
}

// Divergence is one located difference between a pair of aligned records. It
// is produced during a comparison scan and consumed by the report; nothing
// retains it after the run.
type Divergence struct {
	// the alignment key: a cycle count for sparse traces, a step index for
	// dense traces
	At uint64

	Kind Kind

	// the differing field or register, when the difference is attributable
	// to a single field
	Field string

	// the two sides of the difference, rendered for display
	Reference string
	Candidate string

	// supplementary description. used for i/o operation differences where
	// a single field does not tell the story
	Detail string
}

func (d Divergence) String() string {
	if d.Detail != "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("%s: %s: reference=%s candidate=%s", d.Kind, d.Field, d.Reference, d.Candidate)
}

// earlier says whether d sorts before other. Position first; Kind declaration
// order breaks ties.
func (d Divergence) earlier(other Divergence) bool {
	if d.At != other.At {
		return d.At < other.At
	}
	return d.Kind < other.Kind
}
