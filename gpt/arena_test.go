// Copyright 2024 The Armored Witness OS authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gpt

import (
	"testing"
)

func TestPool(t *testing.T) {
	const (
		base    = 0x8000_0000
		entries = 16
	)

	p := newPool(base, 2, entries)

	if got, want := p.count(), 2; got != want {
		t.Fatalf("Got %d slabs, want %d", got, want)
	}

	if _, ok := p.slab(base); ok {
		t.Fatal("Got slab for unallocated memory")
	}

	s0, s1 := p.alloc(), p.alloc()

	if s0 != 0 || s1 != 1 {
		t.Fatalf("Got slabs %d, %d, want 0, 1", s0, s1)
	}

	for _, s := range []Slab{s0, s1} {
		got, ok := p.slab(p.addr(s))
		if !ok || got != s {
			t.Errorf("slab(%#x) = %d, %t, want %d", p.addr(s), got, ok, s)
		}
	}

	if got, want := p.addr(s1), uint64(base+entries*descSize); got != want {
		t.Errorf("Got slab 1 at %#x, want %#x", got, want)
	}

	for _, pa := range []uint64{base + 8, base - entries*descSize, base + 2*entries*descSize} {
		if _, ok := p.slab(pa); ok {
			t.Errorf("Got slab for %#x", pa)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on pool exhaustion")
		}
	}()

	p.alloc()
}

func TestPoolFill(t *testing.T) {
	p := newPool(0, 2, 4)
	s := p.alloc()
	p.alloc()

	p.fill(s, L1Fill(Realm))

	for i := uint64(0); i < 4; i++ {
		if got, want := p.load(p.word(s, i)), L1Fill(Realm); got != want {
			t.Errorf("Slab 0 word %d = %#x, want %#x", i, got, want)
		}
		if got := p.load(p.word(1, i)); got != 0 {
			t.Errorf("Slab 1 word %d = %#x, want 0", i, got)
		}
	}
}

func TestArenaIndex(t *testing.T) {
	a := newArena(0x1000, 4)

	for _, test := range []struct {
		pa     uint64
		want   uint64
		wantOK bool
	}{
		{pa: 0x1000, want: 0, wantOK: true},
		{pa: 0x1018, want: 3, wantOK: true},
		{pa: 0x1020},
		{pa: 0x0ff8},
		{pa: 0x1004},
	} {
		got, ok := a.index(test.pa)
		if ok != test.wantOK || got != test.want {
			t.Errorf("index(%#x) = %d, %t, want %d, %t", test.pa, got, ok, test.want, test.wantOK)
		}
	}
}
