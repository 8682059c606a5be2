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

// Package test contains helper functions to remove common boilerplate from
// test functions.
//
// The Expect functions record a test error and allow the test to continue.
// The Demand functions end the test immediately; use them when subsequent
// test steps make no sense after a failure. For example, demanding that two
// slices are of equal length before iterating over them in unison.
//
// The CompareWriter type is an io.Writer that captures output for comparison
// against an expected string.
package test
