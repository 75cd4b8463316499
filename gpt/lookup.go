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
)

// Lookup returns the PAS currently assigned to the granule at physical
// address pa.
func (g *GPT) Lookup(pa uint64) (PAS, error) {
	g.mustBeInstalled("Lookup")

	if !g.Contains(pa) {
		return NoAccess, ErrInvalidAddress
	}

	desc := g.l0.load(uint64(g.L0Index(pa)))

	switch L0Type(desc) {
	case Block:
		return L0BlockPAS(desc), nil
	case Table:
		s, ok := g.l1.slab(L0TableAddr(desc))

		if !ok {
			return NoAccess, fmt.Errorf("gpt: L0 table descriptor %#x outside L1 pool", desc)
		}

		return g.gpi(s, pa), nil
	}

	return NoAccess, fmt.Errorf("gpt: invalid L0 descriptor %#x", desc)
}

// Entry represents an L0 table entry.
type Entry struct {
	Index L0Index
	// Base is the first physical address covered by the entry.
	Base uint64
	Type DescType
	// PAS is the PAS of block entries.
	PAS PAS
	// Table is the L1 table address of table entries.
	Table uint64
	// Slab is the L1 pool index of table entries.
	Slab Slab
}

func (e Entry) String() string {
	switch e.Type {
	case Block:
		return fmt.Sprintf("L0[%d] %#012x Block(%s)", e.Index, e.Base, e.PAS)
	case Table:
		return fmt.Sprintf("L0[%d] %#012x Table(%#x, slab %d)", e.Index, e.Base, e.Table, e.Slab)
	}

	return fmt.Sprintf("L0[%d] %#012x Invalid", e.Index, e.Base)
}

// Dump returns the decoded L0 table.
func (g *GPT) Dump() (entries []Entry) {
	g.mustBeInstalled("Dump")

	for i := uint64(0); i < g.L0Entries; i++ {
		desc := g.l0.load(i)

		e := Entry{
			Index: L0Index(i),
			Base:  i << g.L0Shift,
			Type:  L0Type(desc),
		}

		switch e.Type {
		case Block:
			e.PAS = L0BlockPAS(desc)
		case Table:
			e.Table = L0TableAddr(desc)
			e.Slab, _ = g.l1.slab(e.Table)
		}

		entries = append(entries, e)
	}

	return
}

// Read64 returns the table descriptor stored at physical address pa, as
// fetched by a hardware table walk.
func (g *GPT) Read64(pa uint64) (uint64, bool) {
	if g == nil || !g.installed {
		return 0, false
	}

	if i, ok := g.l0.index(pa); ok {
		return g.l0.load(i), true
	}

	if i, ok := g.l1.index(pa); ok {
		return g.l1.load(i), true
	}

	return 0, false
}
