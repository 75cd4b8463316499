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

	"k8s.io/klog/v2"
)

// l1Table returns the L1 table of an L0 entry, allocating and installing a
// new one if the entry is not already a table descriptor.
func (g *GPT) l1Table(idx L0Index) Slab {
	desc := g.l0.load(uint64(idx))

	if L0Type(desc) == Table {
		s, ok := g.l1.slab(L0TableAddr(desc))

		if !ok {
			panic(fmt.Sprintf("gpt: L0[%d] points outside the L1 pool (%#x)", idx, L0TableAddr(desc)))
		}

		return s
	}

	s := g.l1.alloc()
	g.l1.fill(s, L1Fill(g.cfg.Unclaimed))
	g.l0.store(uint64(idx), L0Table(g.l1.addr(s)))

	klog.V(1).Infof("SM GPT L0[%d] table at %#x", idx, g.l1.addr(s))

	return s
}

// buildL1 assigns the PAS of a region to each of its granules, walking it in
// L0 entry sized chunks.
func (g *GPT) buildL1(r Region) {
	pa := r.Base

	for pa < r.End() {
		s := g.l1Table(g.L0Index(pa))

		end := (pa | g.ChunkMask) + 1

		if end > r.End() {
			end = r.End()
		}

		for ; pa < end; pa += g.GranuleSize {
			g.setGPI(s, pa, r.PAS)
		}
	}

	klog.V(1).Infof("SM GPT L1 granules %s", r)
}

// setGPI clears and sets the GPI of a granule within its L1 descriptor.
func (g *GPT) setGPI(s Slab, pa uint64, pas PAS) {
	w := g.l1.word(s, g.L1Index(pa))
	g.l1.store(w, L1Set(g.l1.load(w), g.GPIIndex(pa), pas))
}

// gpi returns the GPI of a granule within an L1 table.
func (g *GPT) gpi(s Slab, pa uint64) PAS {
	return L1Get(g.l1.load(g.l1.word(s, g.L1Index(pa))), g.GPIIndex(pa))
}
