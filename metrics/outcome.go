// Copyright 2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

type outcomeKind int

const (
	kindValue outcomeKind = iota
	kindInfinite
	kindUndefined
)

// Outcome is the result of a single metric computation. It is a three-way
// type: a finite value, a signed infinity (the defined result of dividing a
// non-zero excess by a zero risk denominator), or undefined with the reason
// the metric could not be computed. Infinite and Undefined are distinct
// states; presentation layers may render them differently.
type Outcome struct {
	kind   outcomeKind
	value  float64
	sign   int
	reason string
}

// Value creates a finite Outcome
func Value(v float64) Outcome {
	return Outcome{kind: kindValue, value: v}
}

// Infinite creates a signed infinite Outcome; sign must be +1 or -1
func Infinite(sign int) Outcome {
	if sign >= 0 {
		sign = 1
	} else {
		sign = -1
	}
	return Outcome{kind: kindInfinite, sign: sign}
}

// Undefined creates an Outcome that records why the metric has no value
func Undefined(reason string) Outcome {
	return Outcome{kind: kindUndefined, reason: reason}
}

// IsValue reports whether the outcome holds a finite value
func (o Outcome) IsValue() bool {
	return o.kind == kindValue
}

// IsInfinite reports whether the outcome is a signed infinity
func (o Outcome) IsInfinite() bool {
	return o.kind == kindInfinite
}

// IsUndefined reports whether the metric could not be computed
func (o Outcome) IsUndefined() bool {
	return o.kind == kindUndefined
}

// Float64 converts the outcome to a float64: the finite value, ±Inf, or NaN
// for undefined outcomes. Use only where the three-way distinction has
// already been handled.
func (o Outcome) Float64() float64 {
	switch o.kind {
	case kindInfinite:
		return math.Inf(o.sign)
	case kindUndefined:
		return math.NaN()
	default:
		return o.value
	}
}

// Sign returns +1 or -1 for infinite outcomes and 0 otherwise
func (o Outcome) Sign() int {
	if o.kind != kindInfinite {
		return 0
	}
	return o.sign
}

// Reason returns the cause recorded on an undefined outcome
func (o Outcome) Reason() string {
	return o.reason
}

// Scale multiplies a finite outcome by the given factor; infinite and
// undefined outcomes pass through unchanged. Used for percent display
// scaling.
func (o Outcome) Scale(factor float64) Outcome {
	if o.kind != kindValue {
		return o
	}
	return Value(o.value * factor)
}

func (o Outcome) String() string {
	switch o.kind {
	case kindInfinite:
		if o.sign > 0 {
			return "+Inf"
		}
		return "-Inf"
	case kindUndefined:
		return "n/a"
	default:
		return fmt.Sprintf("%.4f", o.value)
	}
}

// MarshalJSON serializes finite values as numbers, infinities as the strings
// "+Inf"/"-Inf", and undefined outcomes as null
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case kindValue:
		return json.Marshal(o.value)
	case kindInfinite:
		return json.Marshal(o.String())
	default:
		return []byte("null"), nil
	}
}
