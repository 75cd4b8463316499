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

// needsTable reports whether a region must be mapped with L1 tables, either
// because it is not aligned to the L0 entry size or because it has been
// explicitly requested.
func (g *GPT) needsTable(r Region) bool {
	return r.Table || !aligned(r.Base, g.ChunkSize) || !aligned(r.Size, g.ChunkSize)
}

// l1Count returns the number of L1 tables required by a region list, one for
// each distinct L0 entry touched by a region mapped with L1 tables.
func (g *GPT) l1Count(regions []Region) uint64 {
	chunks := make(map[L0Index]bool)

	for _, r := range regions {
		if !g.needsTable(r) {
			continue
		}

		for pa := r.Base &^ g.ChunkMask; pa < r.End(); pa += g.ChunkSize {
			chunks[g.L0Index(pa)] = true
		}
	}

	return uint64(len(chunks))
}

// buildL0 fills the L0 table, every entry starts as a block descriptor for
// unclaimed memory and block descriptors are then written for each region
// aligned to the L0 entry size. The number of regions requiring L1 tables is
// returned.
func (g *GPT) buildL0(regions []Region) (tables int) {
	unclaimed := L0Block(g.cfg.Unclaimed)

	for i := uint64(0); i < g.L0Entries; i++ {
		g.l0.store(i, unclaimed)
	}

	for _, r := range regions {
		if g.needsTable(r) {
			tables++
			continue
		}

		if r.End() > g.ProtectedSize {
			panic(fmt.Sprintf("gpt: region %s exceeds protected space", r))
		}

		desc := L0Block(r.PAS)

		for pa := r.Base; pa < r.End(); pa += g.ChunkSize {
			g.l0.store(uint64(g.L0Index(pa)), desc)
		}

		klog.V(1).Infof("SM GPT L0 block %s", r)
	}

	return
}
