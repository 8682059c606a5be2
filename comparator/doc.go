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

// Package comparator aligns two emulator execution traces and locates the
// points at which they diverge.
//
// The reference trace comes from a trusted emulator of the machine and the
// candidate trace from the emulator under test. Both emulators run the same
// program; the comparator never re-executes anything, it only pairs up the
// records the two emulators wrote and compares them field by field.
//
// The two trace formats have their own Comparison implementation. Sparse
// traces sample processor state at a fixed cycle interval and may start,
// stop and insert bookkeeping entries independently, so they are aligned by
// the cycle count: the comparison set is the sorted intersection of the
// cycle values present in both traces. Dense traces log every instruction in
// lockstep and are aligned positionally.
//
// What counts as a difference is controlled by the Policy type. A difference
// is classified as one of three kinds (control-flow, register state, I/O
// operation) and the first occurrence of each kind is tracked independently.
// A divergence is the expected output of a failing differential test, not an
// error: a comparison run always completes and reports, whatever it finds.
package comparator
