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

package comparator_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/hunterchen7/ti84ce/comparator"
	"github.com/hunterchen7/ti84ce/test"
)

// one JSON-lines dense trace entry. the io field is spliced in verbatim
func stepLine(pc string, bc string, io string) string {
	return fmt.Sprintf(`{"pc": "%s", "opcode": {"bytes": "00", "mnemonic": "NOP"}, `+
		`"regs_before": {"A": "00", "F": "00", "BC": "%s", "DE": "000000", "HL": "000000", "IX": "000000", "IY": "000000", "SP": "D00000"}, `+
		`"io_ops": [%s]}`, pc, bc, io)
}

func runDense(t *testing.T, policy comparator.Policy, ref string, cand string) comparator.Summary {
	t.Helper()
	sum, err := comparator.Run(comparator.NewDense(policy), ref, cand, io.Discard)
	test.DemandSuccess(t, err)
	return sum
}

func TestDenseIdenticalTraces(t *testing.T) {
	var lines []string
	for i := 0; i < 6; i++ {
		lines = append(lines, stepLine(fmt.Sprintf("%06X", 0x100+i), "000000", ""))
	}
	ref := writeTrace(t, "ref.jsonl", lines...)
	cand := writeTrace(t, "cand.jsonl", lines...)

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectSuccess(t, sum.Clean())
	test.ExpectEquality(t, sum.Aligned, 6)
	test.ExpectEquality(t, sum.Matches, 6)
}

func TestDenseFirstRegisterDivergence(t *testing.T) {
	var refLines, candLines []string
	for i := 0; i < 8; i++ {
		refLines = append(refLines, stepLine(fmt.Sprintf("%06X", 0x100+i), "0012", ""))
		bc := "0012"
		if i == 5 {
			bc = "0013"
		}
		candLines = append(candLines, stepLine(fmt.Sprintf("%06X", 0x100+i), bc, ""))
	}
	ref := writeTrace(t, "ref.jsonl", refLines...)
	cand := writeTrace(t, "cand.jsonl", candLines...)

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.At, uint64(5))
	test.ExpectEquality(t, sum.First.Kind, comparator.KindRegister)
	test.ExpectEquality(t, sum.First.Field, "BC")
	test.ExpectEquality(t, sum.First.Reference, "0012")
	test.ExpectEquality(t, sum.First.Candidate, "0013")
	test.ExpectEquality(t, sum.Matches, 5)
}

func TestDenseSinglePCDivergence(t *testing.T) {
	ref := writeTrace(t, "ref.jsonl",
		stepLine("000100", "000000", ""),
		stepLine("000103", "000000", ""),
		stepLine("000106", "000000", ""),
	)
	cand := writeTrace(t, "cand.jsonl",
		stepLine("000100", "000000", ""),
		stepLine("00010F", "000000", ""),
		stepLine("000106", "000000", ""),
	)

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.At, uint64(1))
	test.ExpectEquality(t, sum.First.Kind, comparator.KindControlFlow)
}

func TestDenseWritesOnly(t *testing.T) {
	// the traces differ only in a read operation
	ref := writeTrace(t, "ref.jsonl",
		stepLine("000100", "000000",
			`{"type": "read", "target": "mem", "addr": "000101", "value": "03"}, `+
				`{"type": "write", "target": "mem", "addr": "D00000", "old": "00", "new": "FF"}`),
	)
	cand := writeTrace(t, "cand.jsonl",
		stepLine("000100", "000000",
			`{"type": "write", "target": "mem", "addr": "D00000", "old": "00", "new": "FF"}`),
	)

	// with i/o comparison fully enabled the missing read is a divergence
	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.Kind, comparator.KindIO)

	// in writes-only mode the read is invisible
	policy := comparator.NewPolicy()
	policy.WritesOnly = true
	sum = runDense(t, policy, ref, cand)
	test.ExpectSuccess(t, sum.Clean())
}

func TestDenseIgnoreOld(t *testing.T) {
	// the traces differ only in a write's prior value
	ref := writeTrace(t, "ref.jsonl",
		stepLine("000100", "000000", `{"type": "write", "target": "port", "addr": "9000", "old": "00", "new": "FF"}`),
	)
	cand := writeTrace(t, "cand.jsonl",
		stepLine("000100", "000000", `{"type": "write", "target": "port", "addr": "9000", "old": "2C", "new": "FF"}`),
	)

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.Kind, comparator.KindIO)
	test.ExpectSuccess(t, strings.Contains(sum.First.Detail, "old"))

	policy := comparator.NewPolicy()
	policy.IgnoreOld = true
	sum = runDense(t, policy, ref, cand)
	test.ExpectSuccess(t, sum.Clean())
}

func TestDenseNoIOComparison(t *testing.T) {
	ref := writeTrace(t, "ref.jsonl",
		stepLine("000100", "000000", `{"type": "write", "target": "mem", "addr": "D00000", "old": "00", "new": "FF"}`),
	)
	cand := writeTrace(t, "cand.jsonl",
		stepLine("000100", "000000", ""),
	)

	policy := comparator.NewPolicy()
	policy.CompareIO = false
	sum := runDense(t, policy, ref, cand)
	test.ExpectSuccess(t, sum.Clean())
}

func TestDenseIOOpOrderMatters(t *testing.T) {
	// the same two writes in a different order is a divergence
	ops := `{"type": "write", "target": "mem", "addr": "D00000", "old": "00", "new": "FF"}, ` +
		`{"type": "write", "target": "mem", "addr": "D00001", "old": "00", "new": "FE"}`
	swapped := `{"type": "write", "target": "mem", "addr": "D00001", "old": "00", "new": "FE"}, ` +
		`{"type": "write", "target": "mem", "addr": "D00000", "old": "00", "new": "FF"}`

	ref := writeTrace(t, "ref.jsonl", stepLine("000100", "000000", ops))
	cand := writeTrace(t, "cand.jsonl", stepLine("000100", "000000", swapped))

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.Kind, comparator.KindIO)
	test.ExpectSuccess(t, strings.Contains(sum.First.Detail, "addr"))
}

func TestDenseIndependentKinds(t *testing.T) {
	// a register divergence at step 1 and a control-flow divergence at step
	// 3 are located independently; the first overall is the register one
	ref := writeTrace(t, "ref.jsonl",
		stepLine("000100", "000000", ""),
		stepLine("000103", "000011", ""),
		stepLine("000106", "000000", ""),
		stepLine("000109", "000000", ""),
	)
	cand := writeTrace(t, "cand.jsonl",
		stepLine("000100", "000000", ""),
		stepLine("000103", "000022", ""),
		stepLine("000106", "000000", ""),
		stepLine("00010C", "000000", ""),
	)

	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 2)
	test.ExpectEquality(t, sum.First.At, uint64(1))
	test.ExpectEquality(t, sum.First.Kind, comparator.KindRegister)
	test.ExpectEquality(t, sum.Last.At, uint64(3))
	test.ExpectEquality(t, sum.Last.Kind, comparator.KindControlFlow)
}

func TestDenseEmptyTrace(t *testing.T) {
	ref := writeTrace(t, "ref.jsonl", stepLine("000100", "000000", ""))
	cand := writeTrace(t, "cand.jsonl", "")

	// positional alignment with an empty trace yields an empty comparison
	// set; reported, not an error
	sum := runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Aligned, 0)
	test.ExpectSuccess(t, sum.Clean())
}

func TestDenseLimit(t *testing.T) {
	var refLines, candLines []string
	for i := 0; i < 10; i++ {
		refLines = append(refLines, stepLine(fmt.Sprintf("%06X", 0x100+i), "000000", ""))
		pc := fmt.Sprintf("%06X", 0x100+i)
		if i == 7 {
			pc = "FFFFFF"
		}
		candLines = append(candLines, stepLine(pc, "000000", ""))
	}
	ref := writeTrace(t, "ref.jsonl", refLines...)
	cand := writeTrace(t, "cand.jsonl", candLines...)

	// the divergence at step 7 is beyond the scan limit
	policy := comparator.NewPolicy()
	policy.Limit = 5
	sum := runDense(t, policy, ref, cand)
	test.ExpectSuccess(t, sum.Clean())
	test.ExpectEquality(t, sum.Scanned, 5)
	test.ExpectEquality(t, sum.Matches, 5)

	// without the limit it is found
	sum = runDense(t, comparator.NewPolicy(), ref, cand)
	test.ExpectEquality(t, sum.Divergent, 1)
	test.ExpectEquality(t, sum.First.At, uint64(7))
}

func TestDenseContextWindow(t *testing.T) {
	var refLines, candLines []string
	for i := 0; i < 10; i++ {
		refLines = append(refLines, stepLine(fmt.Sprintf("%06X", 0x100+i), "000000", ""))
		pc := fmt.Sprintf("%06X", 0x100+i)
		if i == 5 {
			pc = "FFFFFF"
		}
		candLines = append(candLines, stepLine(pc, "000000", ""))
	}
	ref := writeTrace(t, "ref.jsonl", refLines...)
	cand := writeTrace(t, "cand.jsonl", candLines...)

	cw := &test.CompareWriter{}
	sum, err := comparator.Run(comparator.NewDense(comparator.NewPolicy()), ref, cand, cw)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.First.At, uint64(5))

	test.ExpectSuccess(t, cw.Contains("=== Context (steps 2 to 8) ==="))
	test.ExpectSuccess(t, cw.Contains("<<< DIVERGENCE"))
	test.ExpectSuccess(t, cw.Contains("First control-flow difference at step 5"))
}
