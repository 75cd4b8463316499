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

	"gvisor.dev/gvisor/pkg/atomicbitops"
)

// L0Index represents an index in the L0 table.
type L0Index uint64

// Slab represents an L1 table allocated from the L1 pool.
type Slab int

// arena represents descriptor memory reserved at a fixed physical address.
//
// Words are only ever modified by the boot core during Init or under the
// transition lock, loads can happen concurrently from any core.
type arena struct {
	base  uint64
	words []atomicbitops.Uint64
}

func newArena(base uint64, n uint64) *arena {
	return &arena{
		base:  base,
		words: make([]atomicbitops.Uint64, n),
	}
}

func (a *arena) load(i uint64) uint64 {
	return a.words[i].Load()
}

func (a *arena) store(i uint64, val uint64) {
	a.words[i].Store(val)
}

func (a *arena) size() uint64 {
	return uint64(len(a.words)) * descSize
}

// index returns the word index for a physical address within the arena.
func (a *arena) index(pa uint64) (uint64, bool) {
	if pa < a.base || pa >= a.base+a.size() || !aligned(pa, descSize) {
		return 0, false
	}

	return (pa - a.base) / descSize, true
}

// pool is a bump allocator of L1 tables, sized once at Init for the exact
// number of tables required.
type pool struct {
	*arena

	// descriptors per L1 table
	entries uint64
	// next free slab
	next Slab
}

func newPool(base uint64, count uint64, entries uint64) *pool {
	return &pool{
		arena:   newArena(base, count*entries),
		entries: entries,
	}
}

// count returns the number of slabs in the pool.
func (p *pool) count() int {
	return int(uint64(len(p.words)) / p.entries)
}

// alloc pops the next L1 table, exhaustion can only be the result of a
// sizing mismatch missed at Init and is therefore fatal.
func (p *pool) alloc() Slab {
	if int(p.next) >= p.count() {
		panic(fmt.Sprintf("gpt: L1 pool exhausted (%d tables)", p.count()))
	}

	s := p.next
	p.next++

	return s
}

// fill sets all descriptors of a slab.
func (p *pool) fill(s Slab, desc uint64) {
	start := uint64(s) * p.entries

	for i := start; i < start+p.entries; i++ {
		p.store(i, desc)
	}
}

// addr returns the physical address of a slab.
func (p *pool) addr(s Slab) uint64 {
	return p.base + uint64(s)*p.entries*descSize
}

// slab returns the slab located at a physical address, as found in L0 table
// descriptors.
func (p *pool) slab(pa uint64) (Slab, bool) {
	i, ok := p.index(pa)

	if !ok || i%p.entries != 0 || i/p.entries >= uint64(p.next) {
		return 0, false
	}

	return Slab(i / p.entries), true
}

// word returns the pool word index of an L1 descriptor.
func (p *pool) word(s Slab, index uint64) uint64 {
	return uint64(s)*p.entries + index
}
