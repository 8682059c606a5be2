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
	"fmt"
	"regexp"
	"strconv"
)

// Snapshot is a sparse sample of processor state, keyed by the cycle count at
// which it was taken. Snapshots are immutable once parsed.
//
// The Raw field holds the original trace line and is for diagnostic output
// only. Two snapshots are only ever compared through their parsed fields.
type Snapshot struct {
	Cycle uint64

	// eZ80 addresses and register pairs are 24-bit wide. AF remains 16-bit
	PC uint32
	SP uint32
	AF uint32
	BC uint32
	DE uint32
	HL uint32

	// interrupt controller state
	IntrStat uint32
	IntrEn   uint32

	Halt bool
	IFF1 bool

	// power/speed control state
	Pwr uint8
	Spd uint8

	Raw string
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("cycle=%d PC=%06X SP=%06X AF=%04X BC=%06X DE=%06X HL=%06X HALT=%v IFF1=%v",
		sn.Cycle, sn.PC, sn.SP, sn.AF, sn.BC, sn.DE, sn.HL, sn.Halt, sn.IFF1)
}

// SnapshotMarker is the token that identifies a snapshot line in a sparse
// trace file. Lines without the marker are never considered.
const SnapshotMarker = "[snapshot]"

// the mandatory minimal field set for a snapshot line. a marker line that
// does not satisfy this is dropped
var snapshotMatch = regexp.MustCompile(
	`\[snapshot\] cycle=(\d+) PC=([0-9A-F]+) SP=([0-9A-F]+) AF=([0-9A-F]+) BC=([0-9A-F]+) DE=([0-9A-F]+) HL=([0-9A-F]+)`)

// the optional field groups. absence means a zero/false value
var (
	intrMatch = regexp.MustCompile(`INTR\[stat=([0-9A-F]+) en=([0-9A-F]+)`)
	ctrlMatch = regexp.MustCompile(`CTRL\[pwr=([0-9A-F]+) spd=([0-9A-F]+)`)
	haltMatch = regexp.MustCompile(`HALT=(\d+|true|false)`)
	iffMatch  = regexp.MustCompile(`IFF1=(\d+|true|false)`)
)

func parseFlagWord(s string) bool {
	return s == "1" || s == "true"
}

// ParseSnapshot converts one line of a sparse trace file into a Snapshot. The
// second return value is false if the line does not satisfy the mandatory
// field set for a snapshot.
func ParseSnapshot(line string) (Snapshot, bool) {
	m := snapshotMatch.FindStringSubmatch(line)
	if m == nil {
		return Snapshot{}, false
	}

	// the submatch groups are guaranteed to convert because of how the
	// expressions are written. conversion errors can be ignored
	cycle, _ := strconv.ParseUint(m[1], 10, 64)
	pc, _ := strconv.ParseUint(m[2], 16, 32)
	sp, _ := strconv.ParseUint(m[3], 16, 32)
	af, _ := strconv.ParseUint(m[4], 16, 32)
	bc, _ := strconv.ParseUint(m[5], 16, 32)
	de, _ := strconv.ParseUint(m[6], 16, 32)
	hl, _ := strconv.ParseUint(m[7], 16, 32)

	sn := Snapshot{
		Cycle: cycle,
		PC:    uint32(pc),
		SP:    uint32(sp),
		AF:    uint32(af),
		BC:    uint32(bc),
		DE:    uint32(de),
		HL:    uint32(hl),
		Raw:   line,
	}

	if m := intrMatch.FindStringSubmatch(line); m != nil {
		stat, _ := strconv.ParseUint(m[1], 16, 32)
		en, _ := strconv.ParseUint(m[2], 16, 32)
		sn.IntrStat = uint32(stat)
		sn.IntrEn = uint32(en)
	}

	if m := ctrlMatch.FindStringSubmatch(line); m != nil {
		pwr, _ := strconv.ParseUint(m[1], 16, 32)
		spd, _ := strconv.ParseUint(m[2], 16, 32)
		sn.Pwr = uint8(pwr)
		sn.Spd = uint8(spd)
	}

	if m := haltMatch.FindStringSubmatch(line); m != nil {
		sn.Halt = parseFlagWord(m[1])
	}

	if m := iffMatch.FindStringSubmatch(line); m != nil {
		sn.IFF1 = parseFlagWord(m[1])
	}

	return sn, true
}
