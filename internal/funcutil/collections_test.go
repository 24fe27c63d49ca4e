// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package funcutil

import (
	"reflect"
	"testing"
)

func TestMapParallelKeepsOrder(t *testing.T) {
	var in []int
	for i := 0; i < 100; i++ {
		in = append(in, i)
	}
	for _, routines := range []int{0, 1, 3, 16} {
		out := MapParallel(in, func(x int) int { return x * 2 }, routines)
		if len(out) != len(in) {
			t.Fatalf("expected %d results with %d routines, got %d", len(in), routines, len(out))
		}
		for i, x := range out {
			if x != 2*i {
				t.Errorf("routines=%d: out[%d] = %d, want %d", routines, i, x, 2*i)
			}
		}
	}
}

func TestSetToOrderedSlice(t *testing.T) {
	s := SetToOrderedSlice(map[string]bool{"c": true, "a": true, "b": false, "d": true})
	if !reflect.DeepEqual(s, []string{"a", "c", "d"}) {
		t.Errorf("unexpected slice %v", s)
	}
}

func TestUnionAndFilter(t *testing.T) {
	a := map[int]bool{1: true}
	Union(a, map[int]bool{2: true, 1: false})
	if !a[1] || !a[2] || len(a) != 2 {
		t.Errorf("unexpected union %v", a)
	}
	evens := Filter([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })
	if !reflect.DeepEqual(evens, []int{2, 4}) {
		t.Errorf("unexpected filter result %v", evens)
	}
	if !Contains([]string{"x", "y"}, "y") || Contains([]string{"x"}, "z") {
		t.Errorf("Contains is wrong")
	}
}
