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
	"encoding/binary"

	"github.com/transparency-dev/merkle/compact"
	"github.com/transparency-dev/merkle/rfc6962"
)

// Measure returns the RFC 6962 Merkle tree root of the tables, with one leaf
// for each L0 entry holding its descriptor followed, for table entries, by
// all descriptors of its L1 table (little endian).
//
// The measurement is taken under the transition lock and therefore reflects
// a consistent state.
func (g *GPT) Measure() ([]byte, error) {
	g.mustBeInstalled("Measure")

	g.mu.Lock()
	defer g.mu.Unlock()

	rf := compact.RangeFactory{Hash: rfc6962.DefaultHasher.HashChildren}
	cr := rf.NewEmptyRange(0)

	for i := uint64(0); i < g.L0Entries; i++ {
		if err := cr.Append(g.leafHash(i), nil); err != nil {
			return nil, err
		}
	}

	return cr.GetRootHash(nil)
}

func (g *GPT) leafHash(i uint64) []byte {
	desc := g.l0.load(i)
	buf := binary.LittleEndian.AppendUint64(nil, desc)

	if L0Type(desc) == Table {
		if s, ok := g.l1.slab(L0TableAddr(desc)); ok {
			for j := uint64(0); j < g.L1Entries; j++ {
				buf = binary.LittleEndian.AppendUint64(buf, g.l1.load(g.l1.word(s, j)))
			}
		}
	}

	return rfc6962.DefaultHasher.HashLeaf(buf)
}
