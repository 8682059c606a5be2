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
	"os"
	"strings"

	"github.com/hunterchen7/ti84ce/curated"
	"github.com/hunterchen7/ti84ce/logger"
)

// generous line buffer for sparse traces. snapshot lines are short but the
// surrounding log lines can be anything
const maxSparseLine = 1024 * 1024

// LoadSnapshots reads every well-formed snapshot line from a sparse trace
// file. The file is read line by line and is not held resident; only the
// parsed snapshots are.
//
// Marker lines that fail to parse are skipped. A cycle count lower than its
// predecessor indicates a truncated or stitched trace and is an error;
// aligning such a trace by cycle would silently mispair records.
func LoadSnapshots(path string) ([]Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("sparse trace: %v", err)
	}
	defer f.Close()

	snapshots := make([]Snapshot, 0)
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxSparseLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, SnapshotMarker) {
			continue
		}

		sn, ok := ParseSnapshot(line)
		if !ok {
			skipped++
			continue
		}

		if len(snapshots) > 0 && sn.Cycle < snapshots[len(snapshots)-1].Cycle {
			return nil, curated.Errorf("sparse trace: %s: cycle %d out of order at line %d",
				path, sn.Cycle, lineNum)
		}

		snapshots = append(snapshots, sn)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("sparse trace: %v", err)
	}

	logger.Logf("sparse trace", "%s: %d snapshots loaded (%d marker lines skipped)",
		path, len(snapshots), skipped)

	return snapshots, nil
}
