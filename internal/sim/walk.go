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

package sim

import (
	"errors"
	"fmt"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// Memory represents physical memory holding table descriptors.
type Memory interface {
	Read64(pa uint64) (uint64, bool)
}

// GPF represents a Granule Protection Fault.
type GPF struct {
	Addr  uint64
	Level int
	Desc  uint64
	Msg   string
}

func (f *GPF) Error() string {
	return fmt.Sprintf("granule protection fault at %#x (level %d, desc %#x): %s", f.Addr, f.Level, f.Desc, f.Msg)
}

// ErrDenied is returned by Check when the granule PAS does not match the
// access security state.
var ErrDenied = errors.New("access denied by granule protection check")

// Check performs the Granule Protection Check for an access to physical
// address pa from a given security state, walking the tables from the core
// GPTBR_EL3 and GPCCR_EL3 registers only. The resolved PAS is returned.
//
// Walk results are cached per core until invalidated by TLBI operations.
func (c *CPU) Check(mem Memory, pa uint64, state gpt.SecurityState) (gpt.PAS, error) {
	gpccr := c.ReadGPCCR()

	if gpccr&(1<<gpt.GPCCR_GPC) == 0 {
		return gpt.Any, nil
	}

	geo, err := gpt.Resolve(
		gpt.Granule((gpccr>>gpt.GPCCR_PGS)&0b11),
		gpt.PPS((gpccr>>gpt.GPCCR_PPS)&0b111),
		gpt.L0Size((gpccr>>gpt.GPCCR_L0GPTSZ)&0xf),
	)

	if err != nil {
		return gpt.NoAccess, &GPF{Addr: pa, Msg: err.Error()}
	}

	granule := pa &^ (geo.GranuleSize - 1)

	// walks are serialized with invalidations so that no stale result
	// can be cached after a TLBI completes
	c.machine.mu.Lock()
	pas, ok := c.cache[granule]

	if !ok {
		if pas, err = walk(mem, c.ReadGPTBR()<<12, geo, pa); err != nil {
			c.machine.mu.Unlock()
			return gpt.NoAccess, err
		}

		c.cache[granule] = pas
	}
	c.machine.mu.Unlock()

	if pas != gpt.Any && pas != state.PAS() {
		return pas, ErrDenied
	}

	return pas, nil
}

func walk(mem Memory, base uint64, geo gpt.Geometry, pa uint64) (gpt.PAS, error) {
	if pa >= geo.ProtectedSize {
		return gpt.NoAccess, &GPF{Addr: pa, Msg: "address size fault"}
	}

	l0Addr := base + (pa>>geo.L0Shift)*8
	l0, ok := mem.Read64(l0Addr)

	if !ok {
		return gpt.NoAccess, &GPF{Addr: pa, Msg: fmt.Sprintf("external abort fetching L0 descriptor at %#x", l0Addr)}
	}

	switch l0 & 0xf {
	case 0x1:
		return gpt.PAS((l0 >> 4) & 0xf), nil
	case 0x3:
	default:
		return gpt.NoAccess, &GPF{Addr: pa, Desc: l0, Msg: "invalid L0 descriptor"}
	}

	l1Addr := (l0 & 0x000f_ffff_ffff_f000) + ((pa&(geo.ChunkSize-1))>>(geo.P+4))*8
	l1, ok := mem.Read64(l1Addr)

	if !ok {
		return gpt.NoAccess, &GPF{Addr: pa, Level: 1, Desc: l0, Msg: fmt.Sprintf("external abort fetching L1 descriptor at %#x", l1Addr)}
	}

	gpi := gpt.PAS((l1 >> (((pa >> geo.P) & 0xf) * 4)) & 0xf)

	if !gpi.Valid() {
		return gpt.NoAccess, &GPF{Addr: pa, Level: 1, Desc: l1, Msg: "invalid GPI"}
	}

	return gpi, nil
}
