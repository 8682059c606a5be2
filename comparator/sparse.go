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
	"sort"

	"github.com/hunterchen7/ti84ce/trace"
)

// Sparse compares two cycle-sampled traces. Alignment is by cycle count:
// entries that have no counterpart in the other trace (different start/stop
// cycles, initialisation markers, key-press bookkeeping) simply drop out of
// the comparison set.
type Sparse struct {
	policy Policy

	reference []trace.Snapshot
	candidate []trace.Snapshot

	// cycle count to position in the respective trace
	referenceIdx map[uint64]int
	candidateIdx map[uint64]int

	// the sorted intersection of cycle counts
	aligned []uint64
}

// NewSparse is the preferred method of initialisation for the Sparse type.
func NewSparse(policy Policy) *Sparse {
	return &Sparse{policy: policy}
}

// Load implements the Comparison interface.
func (cmp *Sparse) Load(reference string, candidate string) error {
	var err error

	cmp.reference, err = trace.LoadSnapshots(reference)
	if err != nil {
		return err
	}

	cmp.candidate, err = trace.LoadSnapshots(candidate)
	if err != nil {
		return err
	}

	return nil
}

// Align implements the Comparison interface. The comparison set is the
// intersection of the cycle values present in both traces, sorted ascending.
// The sort matters: map iteration order must never decide which divergence
// is reported first.
func (cmp *Sparse) Align() int {
	cmp.referenceIdx = indexByCycle(cmp.reference)
	cmp.candidateIdx = indexByCycle(cmp.candidate)

	cmp.aligned = make([]uint64, 0, len(cmp.referenceIdx))
	for cycle := range cmp.referenceIdx {
		if _, ok := cmp.candidateIdx[cycle]; ok {
			cmp.aligned = append(cmp.aligned, cycle)
		}
	}

	sort.Slice(cmp.aligned, func(i, j int) bool { return cmp.aligned[i] < cmp.aligned[j] })

	return len(cmp.aligned)
}

func indexByCycle(snapshots []trace.Snapshot) map[uint64]int {
	idx := make(map[uint64]int, len(snapshots))
	for i := range snapshots {
		idx[snapshots[i].Cycle] = i
	}
	return idx
}

// Compare implements the Comparison interface.
func (cmp *Sparse) Compare(output io.Writer) Summary {
	sum := Summary{Unit: "cycle", Aligned: len(cmp.aligned)}

	scan := cmp.aligned
	if cmp.policy.Limit > 0 && len(scan) > cmp.policy.Limit {
		scan = scan[:cmp.policy.Limit]
	}
	sum.Scanned = len(scan)

	fmt.Fprintf(output, "Comparing %d common cycle points...\n", len(scan))

	// cycle of the first divergent point, for the context window
	var firstAt uint64

	for _, cycle := range scan {
		ref := cmp.reference[cmp.referenceIdx[cycle]]
		cand := cmp.candidate[cmp.candidateIdx[cycle]]

		diffs := compareSnapshots(ref, cand, cmp.policy)
		if len(diffs) == 0 {
			sum.Matches++
			continue
		}

		if sum.Divergent == 0 {
			firstAt = cycle
		}

		// a divergent point counts once, classified by its first differing
		// field
		sum.sight(diffs[0])

		// only the first few divergences are rendered in full. the rest are
		// counted
		if sum.Divergent <= cmp.policy.Preview {
			fmt.Fprintf(output, "\n=== DIVERGENCE at cycle %d ===\n", cycle)
			for _, d := range diffs {
				fmt.Fprintf(output, "  %s: reference=%s vs candidate=%s\n", d.Field, d.Reference, d.Candidate)
			}
			fmt.Fprintf(output, "  reference: %s\n", truncateForDisplay(ref.Raw))
			fmt.Fprintf(output, "  candidate: %s\n", truncateForDisplay(cand.Raw))
		}
	}

	if sum.Divergent > cmp.policy.Preview {
		fmt.Fprintf(output, "\n... and %d more divergences\n", sum.Divergent-cmp.policy.Preview)
	}

	if sum.Divergent > 0 {
		cmp.writeContext(output, scan, firstAt)
	}

	sum.Write(output)

	return sum
}

// compareSnapshots returns the ordered list of per-field differences between
// two aligned snapshots. PC is always first in the list so that a divergent
// point with a control-flow difference is classified as such.
//
// The interrupt and power/speed control bytes are informational and take no
// part in equality unless the policy asks for them.
func compareSnapshots(ref trace.Snapshot, cand trace.Snapshot, policy Policy) []Divergence {
	var diffs []Divergence

	word := func(kind Kind, field string, a uint32, b uint32, width int) {
		if a != b {
			diffs = append(diffs, Divergence{
				At:        ref.Cycle,
				Kind:      kind,
				Field:     field,
				Reference: fmt.Sprintf("%0*X", width, a),
				Candidate: fmt.Sprintf("%0*X", width, b),
			})
		}
	}

	flag := func(field string, a bool, b bool) {
		if a != b {
			diffs = append(diffs, Divergence{
				At:        ref.Cycle,
				Kind:      KindRegister,
				Field:     field,
				Reference: fmt.Sprintf("%v", a),
				Candidate: fmt.Sprintf("%v", b),
			})
		}
	}

	word(KindControlFlow, "PC", ref.PC, cand.PC, 6)
	word(KindRegister, "SP", ref.SP, cand.SP, 6)
	word(KindRegister, "AF", ref.AF, cand.AF, 4)
	word(KindRegister, "BC", ref.BC, cand.BC, 6)
	word(KindRegister, "DE", ref.DE, cand.DE, 6)
	word(KindRegister, "HL", ref.HL, cand.HL, 6)
	flag("HALT", ref.Halt, cand.Halt)
	flag("IFF1", ref.IFF1, cand.IFF1)

	if policy.CompareControl {
		word(KindRegister, "INTR.stat", ref.IntrStat, cand.IntrStat, 2)
		word(KindRegister, "INTR.en", ref.IntrEn, cand.IntrEn, 2)
		word(KindRegister, "CTRL.pwr", uint32(ref.Pwr), uint32(cand.Pwr), 2)
		word(KindRegister, "CTRL.spd", uint32(ref.Spd), uint32(cand.Spd), 2)
	}

	return diffs
}

// writeContext renders the snapshots surrounding the first divergent cycle,
// full register set for both traces side by side.
func (cmp *Sparse) writeContext(output io.Writer, scan []uint64, firstAt uint64) {
	// position of the first divergent cycle in the scanned set
	pos := sort.Search(len(scan), func(i int) bool { return scan[i] >= firstAt })
	if pos >= len(scan) || scan[pos] != firstAt {
		return
	}

	from := pos - cmp.policy.Context
	if from < 0 {
		from = 0
	}
	to := pos + cmp.policy.Context
	if to > len(scan)-1 {
		to = len(scan) - 1
	}

	fmt.Fprintf(output, "\n=== Context (cycles %d to %d) ===\n", scan[from], scan[to])
	for i := from; i <= to; i++ {
		cycle := scan[i]
		marker := ""
		if cycle == firstAt {
			marker = " <<< DIVERGENCE"
		}
		fmt.Fprintf(output, "Cycle %d:%s\n", cycle, marker)
		fmt.Fprintf(output, "  reference: %s\n", cmp.reference[cmp.referenceIdx[cycle]])
		fmt.Fprintf(output, "  candidate: %s\n", cmp.candidate[cmp.candidateIdx[cycle]])
	}
}
