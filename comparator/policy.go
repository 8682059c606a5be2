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
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hunterchen7/ti84ce/curated"
)

// Policy is the equivalence policy for a comparison run. It decides which
// fields take part in equality and how much output is produced. The zero
// Policy is not useful; start from NewPolicy().
type Policy struct {
	// compare I/O operations at all (dense traces only)
	CompareIO bool `yaml:"compare_io"`

	// ignore read operations entirely. useful when one emulator does not
	// trace reads
	WritesOnly bool `yaml:"writes_only"`

	// skip comparison of a write operation's prior value. emulators that
	// model register state differently can legitimately disagree on it
	IgnoreOld bool `yaml:"ignore_old"`

	// include the interrupt and power/speed control bytes in sparse
	// snapshot equality. by default they are informational only
	CompareControl bool `yaml:"compare_control"`

	// maximum number of aligned points to scan. zero means no limit
	Limit int `yaml:"limit"`

	// number of records shown either side of a divergence
	Context int `yaml:"context"`

	// number of divergences rendered in full before the remainder are only
	// counted (sparse traces only)
	Preview int `yaml:"preview"`
}

// NewPolicy returns the default equivalence policy: I/O operations compared
// in full, control bytes informational, no scan limit, three records of
// context and five fully rendered divergences.
func NewPolicy() Policy {
	return Policy{
		CompareIO: true,
		Context:   3,
		Preview:   5,
	}
}

// LoadFile overlays the policy with the fields present in a YAML policy
// file. Fields absent from the file keep their current value.
func (p *Policy) LoadFile(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		return curated.Errorf("policy: %v", err)
	}

	if err := yaml.Unmarshal(d, p); err != nil {
		return curated.Errorf("policy: %s: %v", path, err)
	}

	if p.Limit < 0 || p.Context < 0 || p.Preview < 0 {
		return curated.Errorf("policy: %s: negative values are not allowed", path)
	}

	return nil
}
