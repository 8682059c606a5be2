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

package trace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hunterchen7/ti84ce/test"
	"github.com/hunterchen7/ti84ce/trace"
)

const snapshotLine = "[snapshot] cycle=100000 PC=0201F3 SP=D1A87E AF=002C BC=000F42 DE=D0053C HL=D18F2E INTR[stat=00000011 en=00000811] CTRL[pwr=00 spd=01] HALT=0 IFF1=1"

func TestParseSnapshot(t *testing.T) {
	sn, ok := trace.ParseSnapshot(snapshotLine)
	test.DemandSuccess(t, ok)

	test.ExpectEquality(t, sn.Cycle, uint64(100000))
	test.ExpectEquality(t, sn.PC, uint32(0x0201f3))
	test.ExpectEquality(t, sn.SP, uint32(0xd1a87e))
	test.ExpectEquality(t, sn.AF, uint32(0x002c))
	test.ExpectEquality(t, sn.BC, uint32(0x000f42))
	test.ExpectEquality(t, sn.DE, uint32(0xd0053c))
	test.ExpectEquality(t, sn.HL, uint32(0xd18f2e))
	test.ExpectEquality(t, sn.IntrStat, uint32(0x11))
	test.ExpectEquality(t, sn.IntrEn, uint32(0x811))
	test.ExpectEquality(t, sn.Pwr, uint8(0x00))
	test.ExpectEquality(t, sn.Spd, uint8(0x01))
	test.ExpectEquality(t, sn.Halt, false)
	test.ExpectEquality(t, sn.IFF1, true)
	test.ExpectEquality(t, sn.Raw, snapshotLine)
}

func TestParseSnapshotOptionalFields(t *testing.T) {
	// a line with only the mandatory field set. the optional fields default
	// to zero/false
	sn, ok := trace.ParseSnapshot("[snapshot] cycle=200000 PC=000100 SP=D00000 AF=0000 BC=000000 DE=000000 HL=000000")
	test.DemandSuccess(t, ok)

	test.ExpectEquality(t, sn.Cycle, uint64(200000))
	test.ExpectEquality(t, sn.IntrStat, uint32(0))
	test.ExpectEquality(t, sn.Halt, false)
	test.ExpectEquality(t, sn.IFF1, false)

	// flag words can also be spelled out
	sn, ok = trace.ParseSnapshot("[snapshot] cycle=200000 PC=000100 SP=D00000 AF=0000 BC=000000 DE=000000 HL=000000 HALT=true IFF1=false")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, sn.Halt, true)
	test.ExpectEquality(t, sn.IFF1, false)
}

func TestParseSnapshotRejection(t *testing.T) {
	// missing mandatory fields
	_, ok := trace.ParseSnapshot("[snapshot] cycle=100000 PC=0201F3")
	test.ExpectFailure(t, ok)

	// no marker
	_, ok = trace.ParseSnapshot("cycle=100000 PC=0201F3 SP=D1A87E AF=002C BC=000F42 DE=D0053C HL=D18F2E")
	test.ExpectFailure(t, ok)
}

func writeTempTrace(t *testing.T, name string, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSnapshots(t *testing.T) {
	p := writeTempTrace(t, "trace.log", `boot: flash mapped
[init] waiting for ON key
[snapshot] cycle=100000 PC=000100 SP=D00000 AF=0000 BC=000000 DE=000000 HL=000000
random log line that should be ignored
[snapshot] malformed line without the mandatory fields
[snapshot] cycle=200000 PC=000103 SP=D00000 AF=0042 BC=000001 DE=000000 HL=000000 HALT=1
`)

	snapshots, err := trace.LoadSnapshots(p)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(snapshots), 2)

	test.ExpectEquality(t, snapshots[0].Cycle, uint64(100000))
	test.ExpectEquality(t, snapshots[1].Cycle, uint64(200000))
	test.ExpectEquality(t, snapshots[1].Halt, true)
}

func TestLoadSnapshotsNonMonotonic(t *testing.T) {
	p := writeTempTrace(t, "trace.log", `[snapshot] cycle=200000 PC=000100 SP=D00000 AF=0000 BC=000000 DE=000000 HL=000000
[snapshot] cycle=100000 PC=000103 SP=D00000 AF=0000 BC=000000 DE=000000 HL=000000
`)

	// a cycle counter that runs backwards would mis-align the comparison.
	// loading must fail
	_, err := trace.LoadSnapshots(p)
	test.ExpectFailure(t, err)
}

func TestLoadSnapshotsUnreadable(t *testing.T) {
	_, err := trace.LoadSnapshots(filepath.Join(t.TempDir(), "no such file"))
	test.ExpectFailure(t, err)
}
