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

// tracediff compares an execution trace produced by the emulator under
// development with a trace of the same program produced by a trusted
// reference emulator, and reports where and how the two diverge.
//
// The program is a pass/fail gate for scripting: the exit value is zero when
// every compared point matches and non-zero otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/hunterchen7/ti84ce/comparator"
	"github.com/hunterchen7/ti84ce/logger"
	"github.com/hunterchen7/ti84ce/modalflag"
	"github.com/hunterchen7/ti84ce/performance"
	"github.com/hunterchen7/ti84ce/statsview"
)

// exit values. a divergence is not an error, it is the result of the
// comparison, but it still fails the gate
const (
	exitMatch      = 0
	exitDivergence = 1
	exitParseError = 10
	exitRunError   = 20
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("SPARSE", "DENSE")
	md.AdditionalHelp(
		"The sparse mode compares cycle-sampled [snapshot] log lines, aligned by cycle\n" +
			"count. The dense mode compares per-instruction JSON traces, aligned by step\n" +
			"position. In both modes the first argument is the reference trace and the\n" +
			"second is the candidate.")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(exitMatch)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(exitParseError)
	}

	var sum comparator.Summary

	switch md.Mode() {
	case "SPARSE":
		sum, err = compare(md, false)

	case "DENSE":
		sum, err = compare(md, true)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(exitRunError)
	}

	if !sum.Clean() {
		os.Exit(exitDivergence)
	}

	os.Exit(exitMatch)
}

func compare(md *modalflag.Modes, dense bool) (comparator.Summary, error) {
	md.NewMode()

	policyFile := md.AddString("policy", "", "comparison policy file (YAML)")
	limit := md.AddInt("limit", 0, "maximum number of aligned points to compare (0 = no limit)")
	noIO := md.AddBool("no-io", false, "skip i/o operation comparison")
	writesOnly := md.AddBool("writes-only", false, "only compare write operations (reference may not trace reads)")
	ignoreOld := md.AddBool("ignore-old", false, "ignore a write's prior value (register model differences)")
	control := md.AddBool("control", false, "include interrupt/control bytes in snapshot equality")
	context := md.AddInt("context", 3, "records shown either side of a divergence")
	preview := md.AddInt("preview", 5, "divergences rendered in full before the rest are only counted")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	profile := md.AddString("profile", "none", "run with profiler: cpu, mem, all")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return comparator.Summary{}, err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	if len(md.RemainingArgs()) != 2 {
		return comparator.Summary{}, fmt.Errorf("two trace files required for %s mode", md)
	}

	policy := comparator.NewPolicy()
	if *policyFile != "" {
		if err := policy.LoadFile(*policyFile); err != nil {
			return comparator.Summary{}, err
		}
	}

	// flags that were set on the command line override the policy file
	set := make(map[string]bool)
	md.Visit(func(name string) {
		set[name] = true
	})
	if set["limit"] {
		policy.Limit = *limit
	}
	if set["no-io"] {
		policy.CompareIO = !*noIO
	}
	if set["writes-only"] {
		policy.WritesOnly = *writesOnly
	}
	if set["ignore-old"] {
		policy.IgnoreOld = *ignoreOld
	}
	if set["control"] {
		policy.CompareControl = *control
	}
	if set["context"] {
		policy.Context = *context
	}
	if set["preview"] {
		policy.Preview = *preview
	}

	var cmp comparator.Comparison
	if dense {
		cmp = comparator.NewDense(policy)
	} else {
		cmp = comparator.NewSparse(policy)
	}

	prof, err := performance.ParseProfileString(*profile)
	if err != nil {
		return comparator.Summary{}, err
	}

	var sum comparator.Summary
	err = performance.RunProfiler(prof, func() error {
		var err error
		sum, err = comparator.Run(cmp, md.GetArg(0), md.GetArg(1), os.Stdout)
		return err
	})

	return sum, err
}
