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
	"os"
	"path/filepath"
	"testing"

	"github.com/hunterchen7/ti84ce/comparator"
	"github.com/hunterchen7/ti84ce/test"
)

func TestPolicyDefaults(t *testing.T) {
	policy := comparator.NewPolicy()

	test.ExpectEquality(t, policy.CompareIO, true)
	test.ExpectEquality(t, policy.WritesOnly, false)
	test.ExpectEquality(t, policy.IgnoreOld, false)
	test.ExpectEquality(t, policy.CompareControl, false)
	test.ExpectEquality(t, policy.Limit, 0)
	test.ExpectEquality(t, policy.Context, 3)
	test.ExpectEquality(t, policy.Preview, 5)
}

func TestPolicyFileOverlay(t *testing.T) {
	p := filepath.Join(t.TempDir(), "policy.yaml")
	err := os.WriteFile(p, []byte("writes_only: true\nlimit: 100\n"), 0644)
	test.DemandSuccess(t, err)

	policy := comparator.NewPolicy()
	test.DemandSuccess(t, policy.LoadFile(p))

	test.ExpectEquality(t, policy.WritesOnly, true)
	test.ExpectEquality(t, policy.Limit, 100)

	// fields absent from the file keep their defaults
	test.ExpectEquality(t, policy.CompareIO, true)
	test.ExpectEquality(t, policy.Preview, 5)
}

func TestPolicyFileErrors(t *testing.T) {
	policy := comparator.NewPolicy()

	test.ExpectFailure(t, policy.LoadFile(filepath.Join(t.TempDir(), "no such file")))

	p := filepath.Join(t.TempDir(), "policy.yaml")
	test.DemandSuccess(t, os.WriteFile(p, []byte("limit: [not a number\n"), 0644))
	test.ExpectFailure(t, policy.LoadFile(p))

	test.DemandSuccess(t, os.WriteFile(p, []byte("limit: -1\n"), 0644))
	test.ExpectFailure(t, policy.LoadFile(p))
}
