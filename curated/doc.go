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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and compose with the errors
// package in the standard library.
//
// Curated errors are created with the Errorf() function. Like Errorf() in the
// fmt package it takes a formatting pattern and placeholder values, but the
// pattern is retained and can later be tested for:
//
//	e := curated.Errorf("dense trace: %v", err)
//
//	if curated.Is(e, "dense trace: %v") {
//		...
//	}
//
// Has() is similar to Is() but looks for the pattern anywhere in the error
// chain, not just at the head. IsAny() says whether an error is curated at
// all; an uncurated error is one the program did not expect and should be
// treated as such.
//
// By convention every package in this project creates its errors with a
// pattern prefixed by the package's concern. For example, all errors from the
// sparse trace loader begin "sparse trace:". The Error() function normalises
// the rendered chain so that adjacent duplicated parts appear only once.
package curated
