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

package trace

import (
	"encoding/json"
	"fmt"
)

// Value is a field value from a dense trace. Emulators are free to record
// values as hexadecimal strings or as bare numbers; a Value keeps whatever
// literal form the trace used and equality is literal equality. An absent
// field is the empty Value.
type Value string

// UnmarshalJSON implements the json.Unmarshaler interface. JSON strings are
// unquoted; any other JSON value is kept in its literal form.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	if string(data) == "null" {
		*v = ""
		return nil
	}

	*v = Value(data)
	return nil
}

func (v Value) String() string {
	if v == "" {
		return "?"
	}
	return string(v)
}

// Opcode is the instruction at a Step's program counter.
type Opcode struct {
	Bytes    Value `json:"bytes"`
	Mnemonic Value `json:"mnemonic"`
}

// Registers is the processor register state recorded at the start of a Step.
// An unrecorded register keeps the zero Value, which compares equal to an
// unrecorded register on the other side of a comparison.
type Registers struct {
	A  Value `json:"A"`
	F  Value `json:"F"`
	BC Value `json:"BC"`
	DE Value `json:"DE"`
	HL Value `json:"HL"`
	IX Value `json:"IX"`
	IY Value `json:"IY"`
	SP Value `json:"SP"`
}

// RegisterNames lists the compared registers in comparison order.
var RegisterNames = []string{"A", "F", "BC", "DE", "HL", "IX", "IY", "SP"}

// Value returns the named register. Names not in RegisterNames return the
// empty Value.
func (r Registers) Value(name string) Value {
	switch name {
	case "A":
		return r.A
	case "F":
		return r.F
	case "BC":
		return r.BC
	case "DE":
		return r.DE
	case "HL":
		return r.HL
	case "IX":
		return r.IX
	case "IY":
		return r.IY
	case "SP":
		return r.SP
	}
	return ""
}

func (r Registers) String() string {
	return fmt.Sprintf("A=%s F=%s BC=%s DE=%s HL=%s IX=%s IY=%s SP=%s",
		r.A, r.F, r.BC, r.DE, r.HL, r.IX, r.IY, r.SP)
}

// IOOp is a single observed read or write to memory or a peripheral port
// during one Step. The Value field carries the observed value of a read; the
// Old and New fields carry the prior and resulting values of a write.
type IOOp struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Addr   Value  `json:"addr"`
	Value  Value  `json:"value"`
	Old    Value  `json:"old"`
	New    Value  `json:"new"`
}

// IsWrite is true for write operations. Any other operation type is treated
// as a read.
func (op IOOp) IsWrite() bool {
	return op.Type == "write"
}

func (op IOOp) String() string {
	if op.IsWrite() {
		return fmt.Sprintf("%s %s %s: %s -> %s", op.Type, op.Target, op.Addr, op.Old, op.New)
	}
	return fmt.Sprintf("%s %s %s: %s", op.Type, op.Target, op.Addr, op.Value)
}

// Step is a dense trace record: one retired instruction together with the
// register state before it and the I/O operations it caused, in the order
// they happened.
type Step struct {
	PC     Value     `json:"pc"`
	Opcode Opcode    `json:"opcode"`
	Regs   Registers `json:"regs_before"`
	IOOps  []IOOp    `json:"io_ops"`
}
