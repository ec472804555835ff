// This file is part of Ardugo.
//
// Ardugo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Ardugo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Ardugo.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error. The pattern doubles as the identity of the
// error: the Is() function checks whether an error was created with a
// specific pattern, and the Has() function checks whether the pattern occurs
// anywhere in the error chain.
//
//	e := curated.Errorf("ssd1306: %v", err)
//
//	if curated.Has(e, "ssd1306: %v") {
//		...
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. We can think of the difference between curated and
// uncurated errors as the difference between 'expected' and 'unexpected'
// errors, depending on how we choose to handle the result of a function call.
//
// The Error() function implementation ensures that the message chain is
// normalised; specifically, that the chain does not contain duplicate
// adjacent parts. Parts of a chain are separated by the sub-string ': ' as
// suggested on p239 of "The Go Programming Language" (Donovan, Kernighan).
//
// Sentinel patterns should be stored as a const string, suitably named and
// commented, in the package that creates them.
package curated
