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

import (
	"fmt"
	"io"
)

// Summary is the structural result of a comparison run.
//
// First and Last are only meaningful when Divergent is greater than zero.
// When a scan is stopped early (by the point limit or because every
// divergence kind has been located) the counts cover the scanned prefix, and
// partial counts are still reported.
type Summary struct {
	// the alignment unit, for display: "cycle" or "step"
	Unit string

	// number of aligned points, and of those, the number scanned
	Aligned int
	Scanned int

	// scanned points with no difference under the policy
	Matches int

	// number of divergences found. for dense traces this is the number of
	// divergence kinds located, for sparse traces the number of divergent
	// aligned points
	Divergent int

	First Divergence
	Last  Divergence
}

// Clean is true if no divergence was found.
func (s Summary) Clean() bool {
	return s.Divergent == 0
}

// note the first and last sighting of a divergence during a scan
func (s *Summary) sight(d Divergence) {
	if s.Divergent == 0 || d.earlier(s.First) {
		s.First = d
	}
	if s.Divergent == 0 || s.Last.earlier(d) {
		s.Last = d
	}
	s.Divergent++
}

// Write the closing summary block. Formatting only; the Summary is not
// changed.
func (s Summary) Write(output io.Writer) {
	fmt.Fprintf(output, "\n=== Summary ===\n")
	fmt.Fprintf(output, "Aligned %s points: %d (%d scanned)\n", s.Unit, s.Aligned, s.Scanned)
	fmt.Fprintf(output, "Matches: %d\n", s.Matches)
	fmt.Fprintf(output, "Divergences: %d\n", s.Divergent)

	if s.Clean() {
		fmt.Fprintf(output, "\nall compared points match\n")
		return
	}

	fmt.Fprintf(output, "\nFirst divergence at %s %d (%s)\n", s.Unit, s.First.At, s.First.Kind)
	fmt.Fprintf(output, "Last divergence at %s %d (%s)\n", s.Unit, s.Last.At, s.Last.Kind)
}

// raw trace lines can be arbitrarily long. cap them for display
func truncateForDisplay(s string) string {
	const maxDisplay = 100
	if len(s) <= maxDisplay {
		return s
	}
	return s[:maxDisplay] + "..."
}
