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
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/hunterchen7/ti84ce/curated"
	"github.com/hunterchen7/ti84ce/logger"
)

// dense trace lines can be long when an instruction touches a lot of memory
const maxDenseLine = 16 * 1024 * 1024

// LoadSteps reads a dense trace file. Two layouts are accepted: a single
// top-level JSON array of step objects; or JSON-lines, one step object per
// line.
//
// An entry that fails to decode, or that carries no pc field, is skipped.
// A file that cannot be read, or an array whose top-level structure is
// unparsable, is an error.
//
// The whole trace is decoded into memory. This bounds the maximum practical
// dense trace size; sparse traces should be preferred for very long runs.
func LoadSteps(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("dense trace: %v", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)

	// the first non-whitespace byte decides the layout. a file with no
	// content at all is an empty trace, not an error
	layout, err := peekLayout(r)
	if err == io.EOF {
		logger.Logf("dense trace", "%s: empty trace", path)
		return []Step{}, nil
	}
	if err != nil {
		return nil, curated.Errorf("dense trace: %s: %v", path, err)
	}

	var steps []Step
	var skipped int

	if layout == '[' {
		steps, skipped, err = loadStepArray(r)
	} else {
		steps, skipped, err = loadStepLines(r)
	}
	if err != nil {
		return nil, curated.Errorf("dense trace: %s: %v", path, err)
	}

	logger.Logf("dense trace", "%s: %d steps loaded (%d entries skipped)", path, len(steps), skipped)

	return steps, nil
}

func peekLayout(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		if !isJSONSpace(b[0]) {
			return b[0], nil
		}
		_, _ = r.ReadByte()
	}
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// decode each element of a top-level JSON array. elements are decoded in two
// stages so that a single malformed entry can be skipped without abandoning
// the rest of the array
func loadStepArray(r *bufio.Reader) ([]Step, int, error) {
	dec := json.NewDecoder(r)

	// opening bracket
	if _, err := dec.Token(); err != nil {
		return nil, 0, err
	}

	steps := make([]Step, 0, 1024)
	skipped := 0

	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			// a decode failure mid-array is a failure of the top-level
			// structure, not of an individual entry
			return nil, 0, err
		}

		var st Step
		if err := json.Unmarshal(raw, &st); err != nil || st.PC == "" {
			skipped++
			continue
		}

		steps = append(steps, st)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, 0, err
	}

	return steps, skipped, nil
}

// decode one step object per line. a malformed line is skipped
func loadStepLines(r *bufio.Reader) ([]Step, int, error) {
	steps := make([]Step, 0, 1024)
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDenseLine)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var st Step
		if err := json.Unmarshal([]byte(line), &st); err != nil || st.PC == "" {
			skipped++
			continue
		}

		steps = append(steps, st)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return steps, skipped, nil
}
