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

// Package performance contains helper functions relating to performance.
//
// RunProfiler() wraps a function with the requested pprof profiles. Loading
// and scanning multi-million-entry traces is the slow path of this program
// and the profiles say where the time and memory go.
package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/hunterchen7/ti84ce/curated"
)

// Profile is the set of profiles to be generated by RunProfiler().
type Profile int

// List of valid Profile values. Values can be combined with bitwise-or.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
	ProfileAll = ProfileCPU | ProfileMem
)

// ParseProfileString converts a comma separated list of profile names into a
// Profile value. Recognised names are "none", "cpu", "mem" and "all".
func ParseProfileString(s string) (Profile, error) {
	p := ProfileNone

	for _, n := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "", "none":
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		case "all":
			p |= ProfileAll
		default:
			return ProfileNone, curated.Errorf("performance: unrecognised profile (%s)", n)
		}
	}

	return p, nil
}

// RunProfiler runs a function with the requested profiles. Profile output is
// written to cpu.profile and mem.profile in the current directory.
func RunProfiler(profile Profile, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create("mem.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	return nil
}
