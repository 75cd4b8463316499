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

// DescType represents the type of an L0 descriptor.
type DescType int

const (
	Invalid DescType = iota
	Block
	Table
)

func (t DescType) String() string {
	switch t {
	case Block:
		return "Block"
	case Table:
		return "Table"
	}

	return "Invalid"
}

// Arm ARM D8.3.1, GPT descriptor formats
const (
	l0TypeMask  = 0xf
	l0TypeBlock = 0x1
	l0TypeTable = 0x3

	l0BlockGPIShift = 4
	gpiMask         = 0xf

	// L1 table address, bits [51:12]
	l0TableAddrShift = 12
	l0TableAddrBits  = 40
)

var l0TableAddrMask = (bits.MaskOf64(l0TableAddrBits) - 1) << l0TableAddrShift

// L0Block encodes an L0 block descriptor assigning a PAS to the whole L0
// entry.
func L0Block(pas PAS) uint64 {
	return uint64(pas&gpiMask)<<l0BlockGPIShift | l0TypeBlock
}

// L0Table encodes an L0 table descriptor pointing to the L1 table at
// physical address pa, which must be 4KB aligned.
func L0Table(pa uint64) uint64 {
	return pa&l0TableAddrMask | l0TypeTable
}

// L0Type returns the type of an L0 descriptor.
func L0Type(desc uint64) DescType {
	switch desc & l0TypeMask {
	case l0TypeBlock:
		return Block
	case l0TypeTable:
		return Table
	}

	return Invalid
}

// L0BlockPAS returns the PAS of an L0 block descriptor.
func L0BlockPAS(desc uint64) PAS {
	return PAS((desc >> l0BlockGPIShift) & gpiMask)
}

// L0TableAddr returns the L1 table address of an L0 table descriptor.
func L0TableAddr(desc uint64) uint64 {
	return desc & l0TableAddrMask
}

// L1Fill returns an L1 descriptor with all its GPIs set to pas.
func L1Fill(pas PAS) (desc uint64) {
	for i := uint(0); i < gpisPerDesc; i++ {
		desc = L1Set(desc, i, pas)
	}

	return
}

// L1Get returns the i-th GPI of an L1 descriptor.
func L1Get(desc uint64, i uint) PAS {
	return PAS((desc >> (i * gpiIndexBits)) & gpiMask)
}

// L1Set returns desc with its i-th GPI replaced with pas, the remaining GPIs
// are preserved.
func L1Set(desc uint64, i uint, pas PAS) uint64 {
	shift := i * gpiIndexBits

	desc &^= gpiMask << shift
	desc |= uint64(pas&gpiMask) << shift

	return desc
}

// DescString returns a human readable representation of an L0 descriptor.
func DescString(desc uint64) string {
	switch L0Type(desc) {
	case Block:
		return fmt.Sprintf("Block(%s)", L0BlockPAS(desc))
	case Table:
		return fmt.Sprintf("Table(%#x)", L0TableAddr(desc))
	}

	return fmt.Sprintf("Invalid(%#x)", desc)
}
