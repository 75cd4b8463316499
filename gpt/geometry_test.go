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
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	for _, test := range []struct {
		name          string
		pgs           Granule
		pps           PPS
		wantP         uint
		wantL0Entries uint64
		wantL0Mask    uint64
		wantL1Size    uint64
		wantValidated bool
	}{
		{
			name:          "4KB over 4GB",
			pgs:           PGS4KB,
			pps:           PPS4GB,
			wantP:         12,
			wantL0Entries: 4,
			wantL0Mask:    0xc000_0000,
			wantL1Size:    128 << 10,
			wantValidated: true,
		}, {
			name:          "16KB over 4GB",
			pgs:           PGS16KB,
			pps:           PPS4GB,
			wantP:         14,
			wantL0Entries: 4,
			wantL0Mask:    0xc000_0000,
			wantL1Size:    32 << 10,
		}, {
			name:          "64KB over 64GB",
			pgs:           PGS64KB,
			pps:           PPS64GB,
			wantP:         16,
			wantL0Entries: 64,
			wantL0Mask:    0xf_c000_0000,
			wantL1Size:    8 << 10,
		}, {
			name:          "4KB over 4PB",
			pgs:           PGS4KB,
			pps:           PPS4PB,
			wantP:         12,
			wantL0Entries: 1 << 22,
			wantL0Mask:    0xf_ffff_c000_0000,
			wantL1Size:    128 << 10,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g, err := Resolve(test.pgs, test.pps, L0GPTSZ1GB)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got, want := g.P, test.wantP; got != want {
				t.Errorf("Got p %d, want %d", got, want)
			}
			if got, want := g.L0Entries, test.wantL0Entries; got != want {
				t.Errorf("Got %d L0 entries, want %d", got, want)
			}
			if got, want := g.L0TableSize, test.wantL0Entries*8; got != want {
				t.Errorf("Got L0 table size %d, want %d", got, want)
			}
			if got, want := g.L0Mask, test.wantL0Mask; got != want {
				t.Errorf("Got L0 mask %#x, want %#x", got, want)
			}
			if got, want := g.L1TableSize, test.wantL1Size; got != want {
				t.Errorf("Got L1 table size %d, want %d", got, want)
			}
			if got, want := g.Validated(), test.wantValidated; got != want {
				t.Errorf("Got validated %t, want %t", got, want)
			}
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, test := range []struct {
		name string
		pgs  Granule
		pps  PPS
		l0   L0Size
	}{
		{name: "granule", pgs: 0b11, pps: PPS4GB, l0: L0GPTSZ1GB},
		{name: "pps", pgs: PGS4KB, pps: 7, l0: L0GPTSZ1GB},
		{name: "l0gptsz", pgs: PGS4KB, pps: PPS4GB, l0: 0b0001},
		{name: "l0 larger than pps", pgs: PGS4KB, pps: PPS4GB, l0: L0GPTSZ16GB},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Resolve(test.pgs, test.pps, test.l0)
			if !errors.Is(err, &ConfigError{Kind: ErrSelector}) {
				t.Fatalf("Got %v, want selector error", err)
			}
		})
	}
}

func TestIndices(t *testing.T) {
	g, err := Resolve(PGS4KB, PPS4GB, L0GPTSZ1GB)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	for _, test := range []struct {
		pa      uint64
		wantL0  L0Index
		wantL1  uint64
		wantGPI uint
	}{
		{pa: 0, wantL0: 0, wantL1: 0, wantGPI: 0},
		{pa: 0x4000_0000, wantL0: 1, wantL1: 0, wantGPI: 0},
		{pa: 0x4000_1000, wantL0: 1, wantL1: 0, wantGPI: 1},
		{pa: 0x4000_f000, wantL0: 1, wantL1: 0, wantGPI: 15},
		{pa: 0x4001_0000, wantL0: 1, wantL1: 1, wantGPI: 0},
		{pa: 0xffff_f000, wantL0: 3, wantL1: 16383, wantGPI: 15},
	} {
		if got := g.L0Index(test.pa); got != test.wantL0 {
			t.Errorf("L0Index(%#x) = %d, want %d", test.pa, got, test.wantL0)
		}
		if got := g.L1Index(test.pa); got != test.wantL1 {
			t.Errorf("L1Index(%#x) = %d, want %d", test.pa, got, test.wantL1)
		}
		if got := g.GPIIndex(test.pa); got != test.wantGPI {
			t.Errorf("GPIIndex(%#x) = %d, want %d", test.pa, got, test.wantGPI)
		}
	}
}

func TestSelectorStrings(t *testing.T) {
	for _, test := range []struct {
		got  string
		want string
	}{
		{PGS4KB.String(), "4KB"},
		{PGS16KB.String(), "16KB"},
		{PGS64KB.String(), "64KB"},
		{PPS4GB.String(), "4GB"},
		{PPS256TB.String(), "256TB"},
		{PPS4PB.String(), "4PB"},
		{L0GPTSZ1GB.String(), "1GB"},
		{L0GPTSZ512GB.String(), "512GB"},
	} {
		if test.got != test.want {
			t.Errorf("Got %q, want %q", test.got, test.want)
		}
	}
}
