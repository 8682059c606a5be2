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

	"github.com/hunterchen7/ti84ce/trace"
)

// Dense compares two per-instruction traces. Dense traces are expected to
// log every instruction in lockstep so alignment is purely positional: the
// i-th step of one trace against the i-th step of the other. There is no
// reordering and no key lookup.
type Dense struct {
	policy Policy

	reference []trace.Step
	candidate []trace.Step

	aligned int
}

// NewDense is the preferred method of initialisation for the Dense type.
func NewDense(policy Policy) *Dense {
	return &Dense{policy: policy}
}

// Load implements the Comparison interface.
func (cmp *Dense) Load(reference string, candidate string) error {
	var err error

	cmp.reference, err = trace.LoadSteps(reference)
	if err != nil {
		return err
	}

	cmp.candidate, err = trace.LoadSteps(candidate)
	if err != nil {
		return err
	}

	return nil
}

// Align implements the Comparison interface. Positional alignment means the
// comparison set is simply the shorter of the two traces.
func (cmp *Dense) Align() int {
	cmp.aligned = len(cmp.reference)
	if len(cmp.candidate) < cmp.aligned {
		cmp.aligned = len(cmp.candidate)
	}
	return cmp.aligned
}

// Compare implements the Comparison interface.
//
// The three divergence kinds are located independently and concurrently: a
// control-flow divergence and a register divergence may be found at
// different steps. Scanning stops once every kind enabled by the policy has
// been located, or at the scan limit, whichever comes first.
func (cmp *Dense) Compare(output io.Writer) Summary {
	sum := Summary{Unit: "step", Aligned: cmp.aligned}

	fmt.Fprintf(output, "reference trace: %d steps, candidate trace: %d steps\n",
		len(cmp.reference), len(cmp.candidate))

	bound := cmp.aligned
	if cmp.policy.Limit > 0 && bound > cmp.policy.Limit {
		bound = cmp.policy.Limit
	}

	var firstPC *Divergence
	var firstReg *Divergence
	var firstIO *Divergence

	for i := 0; i < bound; i++ {
		ref := cmp.reference[i]
		cand := cmp.candidate[i]

		// every check runs on every step so that the match count stays
		// honest. only the first sighting of each kind is recorded
		pcDiff := ref.PC != cand.PC
		regName, regDiff := firstRegisterDiff(ref.Regs, cand.Regs)

		ioOK := true
		var ioDesc string
		if cmp.policy.CompareIO {
			ioOK, ioDesc = compareIOOps(ref.IOOps, cand.IOOps, cmp.policy)
		}

		if pcDiff && firstPC == nil {
			firstPC = &Divergence{
				At:        uint64(i),
				Kind:      KindControlFlow,
				Field:     "PC",
				Reference: ref.PC.String(),
				Candidate: cand.PC.String(),
			}
		}

		if regDiff && firstReg == nil {
			firstReg = &Divergence{
				At:        uint64(i),
				Kind:      KindRegister,
				Field:     regName,
				Reference: ref.Regs.Value(regName).String(),
				Candidate: cand.Regs.Value(regName).String(),
			}
		}

		if !ioOK && firstIO == nil {
			firstIO = &Divergence{
				At:     uint64(i),
				Kind:   KindIO,
				Detail: ioDesc,
			}
		}

		if !pcDiff && !regDiff && ioOK {
			sum.Matches++
		}

		sum.Scanned = i + 1

		if firstPC != nil && firstReg != nil && (firstIO != nil || !cmp.policy.CompareIO) {
			break
		}
	}

	for _, d := range []*Divergence{firstPC, firstReg, firstIO} {
		if d != nil {
			sum.sight(*d)
		}
	}

	if sum.Clean() {
		fmt.Fprintf(output, "\nNo divergence found in %d steps\n", sum.Scanned)
		if len(cmp.reference) != len(cmp.candidate) {
			fmt.Fprintf(output, "  (trace lengths differ: %d vs %d)\n", len(cmp.reference), len(cmp.candidate))
		}
	} else {
		cmp.writeDivergences(output, firstPC, firstReg, firstIO)
		cmp.writeContext(output, int(sum.First.At), bound)
	}

	sum.Write(output)

	return sum
}

// firstRegisterDiff finds the first differing register within a step,
// scanning in RegisterNames order. Further differing registers in the same
// step are deliberately not examined.
func firstRegisterDiff(ref trace.Registers, cand trace.Registers) (string, bool) {
	for _, name := range trace.RegisterNames {
		if ref.Value(name) != cand.Value(name) {
			return name, true
		}
	}
	return "", false
}

// compareIOOps compares two ordered I/O operation lists under the policy.
// Operation count is compared first and a count mismatch short-circuits the
// per-operation comparison. The false return value carries a description of
// the difference.
func compareIOOps(refOps []trace.IOOp, candOps []trace.IOOp, policy Policy) (bool, string) {
	if policy.WritesOnly {
		refOps = writesOf(refOps)
		candOps = writesOf(candOps)
	}

	if len(refOps) != len(candOps) {
		return false, fmt.Sprintf("count mismatch: %d vs %d", len(refOps), len(candOps))
	}

	for i := range refOps {
		ref := refOps[i]
		cand := candOps[i]

		if ref.Type != cand.Type {
			return false, fmt.Sprintf("op[%d] type: %s vs %s", i, ref.Type, cand.Type)
		}
		if ref.Target != cand.Target {
			return false, fmt.Sprintf("op[%d] target: %s vs %s", i, ref.Target, cand.Target)
		}
		if ref.Addr != cand.Addr {
			return false, fmt.Sprintf("op[%d] addr: %s vs %s", i, ref.Addr, cand.Addr)
		}

		if ref.IsWrite() {
			if !policy.IgnoreOld && ref.Old != cand.Old {
				return false, fmt.Sprintf("op[%d] old: %s vs %s", i, ref.Old, cand.Old)
			}
			if ref.New != cand.New {
				return false, fmt.Sprintf("op[%d] new: %s vs %s", i, ref.New, cand.New)
			}
		} else if ref.Value != cand.Value {
			return false, fmt.Sprintf("op[%d] value: %s vs %s", i, ref.Value, cand.Value)
		}
	}

	return true, ""
}

func writesOf(ops []trace.IOOp) []trace.IOOp {
	w := make([]trace.IOOp, 0, len(ops))
	for _, op := range ops {
		if op.IsWrite() {
			w = append(w, op)
		}
	}
	return w
}

// maximum number of i/o operations listed per side in divergence output
const ioOpsPreview = 5

func (cmp *Dense) writeDivergences(output io.Writer, firstPC *Divergence, firstReg *Divergence, firstIO *Divergence) {
	fmt.Fprintf(output, "\n=== First Divergence Found ===\n")

	if firstReg != nil {
		fmt.Fprintf(output, "\nFirst register difference at step %d:\n", firstReg.At)
		fmt.Fprintf(output, "  Register %s: reference=%s, candidate=%s\n", firstReg.Field, firstReg.Reference, firstReg.Candidate)
	}

	if firstIO != nil {
		fmt.Fprintf(output, "\nFirst i/o difference at step %d:\n", firstIO.At)
		fmt.Fprintf(output, "  %s\n", firstIO.Detail)
		writeIOOps(output, "reference", cmp.reference[firstIO.At].IOOps)
		writeIOOps(output, "candidate", cmp.candidate[firstIO.At].IOOps)
	}

	if firstPC != nil {
		fmt.Fprintf(output, "\nFirst control-flow difference at step %d:\n", firstPC.At)
		fmt.Fprintf(output, "  PC: reference=%s, candidate=%s\n", firstPC.Reference, firstPC.Candidate)
	}
}

func writeIOOps(output io.Writer, label string, ops []trace.IOOp) {
	fmt.Fprintf(output, "  %s (%d ops):\n", label, len(ops))
	for i, op := range ops {
		if i == ioOpsPreview {
			fmt.Fprintf(output, "    ... and %d more\n", len(ops)-ioOpsPreview)
			break
		}
		fmt.Fprintf(output, "    %s\n", op)
	}
}

// writeContext renders the steps surrounding the first divergence: PC and
// opcode bytes for both traces side by side, with register state and i/o
// operations expanded on the divergence row.
func (cmp *Dense) writeContext(output io.Writer, at int, bound int) {
	from := at - cmp.policy.Context
	if from < 0 {
		from = 0
	}
	to := at + cmp.policy.Context
	if to > bound-1 {
		to = bound - 1
	}

	fmt.Fprintf(output, "\n=== Context (steps %d to %d) ===\n", from, to)

	for j := from; j <= to; j++ {
		ref := cmp.reference[j]
		cand := cmp.candidate[j]

		marker := ""
		if j == at {
			marker = " <<< DIVERGENCE"
		}

		fmt.Fprintf(output, "Step %d: reference PC=%s op=%s  |  candidate PC=%s op=%s%s\n",
			j, ref.PC, ref.Opcode.Bytes, cand.PC, cand.Opcode.Bytes, marker)

		if j != at {
			continue
		}

		fmt.Fprintf(output, "  reference: %s\n", ref.Regs)
		fmt.Fprintf(output, "  candidate: %s\n", cand.Regs)

		if len(ref.IOOps) > 0 || len(cand.IOOps) > 0 {
			writeIOOps(output, "i/o reference", ref.IOOps)
			writeIOOps(output, "i/o candidate", cand.IOOps)
		}
	}
}
