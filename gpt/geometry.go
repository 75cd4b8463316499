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
	"fmt"

	"gvisor.dev/gvisor/pkg/bits"
)

// Granule represents the GPCCR_EL3.PGS physical granule size selector.
type Granule uint32

// GPCCR_EL3.PGS encodings
const (
	PGS4KB  Granule = 0b00
	PGS64KB Granule = 0b01
	PGS16KB Granule = 0b10
)

// PPS represents the GPCCR_EL3.PPS protected physical address size
// selector.
type PPS uint32

// GPCCR_EL3.PPS encodings
const (
	PPS4GB PPS = iota
	PPS64GB
	PPS1TB
	PPS4TB
	PPS16TB
	PPS256TB
	PPS4PB
)

// L0Size represents the GPCCR_EL3.L0GPTSZ selector, the number of bytes
// covered by each L0 entry.
type L0Size uint32

// GPCCR_EL3.L0GPTSZ encodings
const (
	L0GPTSZ1GB   L0Size = 0b0000
	L0GPTSZ16GB  L0Size = 0b0100
	L0GPTSZ64GB  L0Size = 0b0110
	L0GPTSZ512GB L0Size = 0b1001
)

// granule size shift (p)
var pgsShift = map[Granule]uint{
	PGS4KB:  12,
	PGS16KB: 14,
	PGS64KB: 16,
}

// protected physical address size in bits
var ppsBits = map[PPS]uint{
	PPS4GB:   32,
	PPS64GB:  36,
	PPS1TB:   40,
	PPS4TB:   42,
	PPS16TB:  44,
	PPS256TB: 48,
	PPS4PB:   52,
}

// bytes covered per L0 entry, in bits
var l0gptszBits = map[L0Size]uint{
	L0GPTSZ1GB:   30,
	L0GPTSZ16GB:  34,
	L0GPTSZ64GB:  36,
	L0GPTSZ512GB: 39,
}

const (
	// descriptor size in bytes
	descSize = 8
	// GPIs per L1 descriptor
	gpisPerDesc = 16
	// log2(gpisPerDesc)
	gpiIndexBits = 4
)

func (g Granule) String() string {
	if p, ok := pgsShift[g]; ok {
		return sizeString(bits.MaskOf64(int(p)))
	}

	return fmt.Sprintf("PGS(%d)", uint32(g))
}

func (p PPS) String() string {
	if n, ok := ppsBits[p]; ok {
		return sizeString(bits.MaskOf64(int(n)))
	}

	return fmt.Sprintf("PPS(%d)", uint32(p))
}

func (l L0Size) String() string {
	if n, ok := l0gptszBits[l]; ok {
		return sizeString(bits.MaskOf64(int(n)))
	}

	return fmt.Sprintf("L0GPTSZ(%d)", uint32(l))
}

// Geometry represents table sizes, index masks and shifts resolved from the
// configuration selectors.
type Geometry struct {
	PGS     Granule
	PPS     PPS
	L0GPTSZ L0Size

	// P is log2 of the granule size.
	P uint
	// PPSBits is log2 of the protected space size.
	PPSBits uint
	// L0Shift is log2 of the bytes covered by each L0 entry.
	L0Shift uint

	// GranuleSize is the size in bytes of each granule.
	GranuleSize uint64
	// ProtectedSize is the size in bytes of the protected space.
	ProtectedSize uint64
	// ChunkSize is the number of bytes covered by each L0 entry.
	ChunkSize uint64
	// ChunkMask selects the offset of an address within its L0 entry.
	ChunkMask uint64

	// L0Entries is the number of L0 descriptors.
	L0Entries uint64
	// L0TableSize is the L0 table size in bytes.
	L0TableSize uint64
	// L0Mask selects the physical address bits used as L0 index (before
	// shifting by L0Shift).
	L0Mask uint64

	// L1Entries is the number of descriptors in each L1 table.
	L1Entries uint64
	// L1TableSize is the size in bytes of each L1 table.
	L1TableSize uint64
}

// Resolve returns the table geometry for a granule size, protected space size
// and L0 entry size selector.
func Resolve(pgs Granule, pps PPS, l0 L0Size) (g Geometry, err error) {
	p, ok := pgsShift[pgs]

	if !ok {
		return g, configErrorf(ErrSelector, "invalid granule size selector %d", uint32(pgs))
	}

	n, ok := ppsBits[pps]

	if !ok {
		return g, configErrorf(ErrSelector, "invalid protected space size selector %d", uint32(pps))
	}

	s, ok := l0gptszBits[l0]

	if !ok {
		return g, configErrorf(ErrSelector, "invalid L0 entry size selector %d", uint32(l0))
	}

	if s > n {
		return g, configErrorf(ErrSelector, "L0 entry size (%s) exceeds protected space size (%s)", l0, pps)
	}

	g = Geometry{
		PGS:     pgs,
		PPS:     pps,
		L0GPTSZ: l0,
		P:       p,
		PPSBits: n,
		L0Shift: s,

		GranuleSize:   bits.MaskOf64(int(p)),
		ProtectedSize: bits.MaskOf64(int(n)),
		ChunkSize:     bits.MaskOf64(int(s)),
	}

	g.ChunkMask = g.ChunkSize - 1

	g.L0Entries = bits.MaskOf64(int(n - s))
	g.L0TableSize = g.L0Entries * descSize
	g.L0Mask = (g.ProtectedSize - 1) &^ g.ChunkMask

	g.L1Entries = bits.MaskOf64(int(s - p - gpiIndexBits))
	g.L1TableSize = g.L1Entries * descSize

	return
}

// Validated reports whether the geometry is one exercised end-to-end by the
// reference platform (4KB granules over a 4GB protected space).
func (g Geometry) Validated() bool {
	return g.PGS == PGS4KB && g.PPS == PPS4GB
}

// L0Index returns the L0 table index covering a physical address.
func (g Geometry) L0Index(pa uint64) L0Index {
	return L0Index((pa & g.L0Mask) >> g.L0Shift)
}

// L1Index returns the index of the L1 descriptor holding the GPI of a
// physical address, within the L1 table of its L0 entry.
func (g Geometry) L1Index(pa uint64) uint64 {
	return (pa & g.ChunkMask) >> (g.P + gpiIndexBits)
}

// GPIIndex returns the position of the GPI of a physical address within its
// L1 descriptor.
func (g Geometry) GPIIndex(pa uint64) uint {
	return uint((pa >> g.P) & (gpisPerDesc - 1))
}

// Contains reports whether a physical address falls within the protected
// space.
func (g Geometry) Contains(pa uint64) bool {
	return pa < g.ProtectedSize
}

// aligned reports whether v is a multiple of the given power of two size.
func aligned(v uint64, size uint64) bool {
	return v&(size-1) == 0
}

func sizeString(n uint64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}

	i := 0

	for n >= 1024 && n%1024 == 0 && i < len(units)-1 {
		n /= 1024
		i++
	}

	return fmt.Sprintf("%d%s", n, units[i])
}
