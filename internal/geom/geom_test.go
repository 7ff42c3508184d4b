/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func TestRectContainsAndUnion(t *testing.T) {
	r := R(10, 10, 100, 50)
	if !r.Contains(LogicalPoint{10, 10}) || !r.Contains(LogicalPoint{110, 60}) {
		t.Fatalf("rect should contain its corners")
	}
	if r.Contains(LogicalPoint{9.9, 10}) {
		t.Fatalf("point left of rect must not be contained")
	}
	u := r.Union(R(-5, 20, 10, 100))
	want := R(-5, 10, 115, 110)
	if u != want {
		t.Fatalf("union mismatch: got %+v want %+v", u, want)
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Fatalf("empty input must report ok=false")
	}
	b, ok := BoundsOf([]Rect{R(0, 0, 10, 10), R(30, 40, 5, 5), R(-2, 3, 1, 1)})
	if !ok {
		t.Fatalf("expected ok")
	}
	if b != R(-2, 0, 37, 45) {
		t.Fatalf("bounds mismatch: %+v", b)
	}
}

func TestScreenDeltaDivByZoom(t *testing.T) {
	d := ScreenDelta{DX: 40, DY: 20}
	ld := d.Div(2)
	if ld.DX != 20 || ld.DY != 10 {
		t.Fatalf("delta conversion wrong: %+v", ld)
	}
	if z := d.Div(0); z != (LogicalDelta{}) {
		t.Fatalf("zero zoom must yield zero delta, got %+v", z)
	}
}

func TestFiniteGuards(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	if Finite(nan) || Finite(inf) {
		t.Fatalf("NaN/Inf must not be finite")
	}
	if !(ScreenPoint{1, 2}).Finite() {
		t.Fatalf("plain point should be finite")
	}
	if (ScreenDelta{nan, 0}).Finite() {
		t.Fatalf("NaN delta should be rejected")
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 3); got != 1.235 {
		t.Fatalf("expected 1.235, got %v", got)
	}
	if got := FloatRound(2.5, 0); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}
