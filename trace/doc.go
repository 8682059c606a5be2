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

// Package trace defines the records written by an emulator execution trace
// and the loaders that read them from a file.
//
// Two record shapes are supported. The Snapshot type is a sparse sample of
// processor state taken at a fixed cycle interval and keyed by the cycle
// count. The Step type is a dense per-instruction record including the
// instruction's observed side effects (the IOOp type).
//
// Loaders are tolerant of individual malformed records. A line or entry that
// does not satisfy the minimum field set for its record shape is skipped and
// the remainder of the file is still loaded. An unreadable file or an
// unparsable top-level structure is an error.
//
// Sparse trace files are read line by line and never held resident in full,
// so very long runs are cheap to load. Dense traces are decoded entirely
// into memory; available memory bounds the maximum practical dense trace
// size.
package trace
