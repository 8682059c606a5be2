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

import "io"

// Comparison is the format-specific heart of a comparison run. The three
// capabilities are always exercised in order: Load() the two traces, Align()
// their records, Compare() the aligned pairs.
//
// Implementations hold no state between runs; a Comparison value is used for
// exactly one pair of traces and then discarded.
type Comparison interface {
	// Load the reference and candidate traces from their files. An
	// unreadable or structurally unparsable file is an error. The loaded
	// traces are owned by the Comparison and never mutated.
	Load(reference string, candidate string) error

	// Align pairs up corresponding records from the two loaded traces and
	// returns the number of aligned points. Zero aligned points is a valid
	// outcome, not an error.
	Align() int

	// Compare scans the aligned pairs strictly in order, writing divergence
	// detail and a closing summary to the writer. The returned Summary is
	// the structural result; the written output is for human diagnosis
	// only.
	Compare(output io.Writer) Summary
}

// Run performs a complete comparison: load, align, compare.
func Run(cmp Comparison, reference string, candidate string, output io.Writer) (Summary, error) {
	if err := cmp.Load(reference, candidate); err != nil {
		return Summary{}, err
	}
	cmp.Align()
	return cmp.Compare(output), nil
}
