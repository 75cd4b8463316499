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
	"github.com/usbarmory/tamago/bits"
)

// GPCCR_EL3, Arm ARM D19.2
const (
	GPCCR_PPS     = 0
	GPCCR_IRGN    = 8
	GPCCR_ORGN    = 10
	GPCCR_SH      = 12
	GPCCR_PGS     = 14
	GPCCR_GPC     = 16
	GPCCR_GPCP    = 17
	GPCCR_L0GPTSZ = 20

	// Inner Shareable
	SH_IS = 0b11
	// Normal memory, Write-Back Read-Allocate Write-Allocate Cacheable
	RGN_WBRAWA = 0b01
)

// GPTBR_EL3.BADDR holds bits [51:12] of the L0 table address
const gptbrShift = 12

// GPCCR returns the GPCCR_EL3 value enabling the Granule Protection Check
// for the installed tables.
func (g *GPT) GPCCR() uint64 {
	var gpccr uint32

	bits.SetN(&gpccr, GPCCR_PPS, 0b111, uint32(g.PPS))
	bits.SetN(&gpccr, GPCCR_IRGN, 0b11, RGN_WBRAWA)
	bits.SetN(&gpccr, GPCCR_ORGN, 0b11, RGN_WBRAWA)
	bits.SetN(&gpccr, GPCCR_SH, 0b11, SH_IS)
	bits.SetN(&gpccr, GPCCR_PGS, 0b11, uint32(g.PGS))
	bits.SetN(&gpccr, GPCCR_L0GPTSZ, 0xf, uint32(g.L0GPTSZ))
	bits.Set(&gpccr, GPCCR_GPC)

	return uint64(gpccr)
}

// Enable programs the calling core to check accesses against the installed
// tables. It must be invoked once on each core after Init.
//
// Table memory is never modified, repeated invocations only rewrite the
// control registers.
func (g *GPT) Enable(cpu CPU) {
	g.mustBeInstalled("Enable")

	// drop any stale cached GPT information
	g.hw.TLBIPAALLOS()
	g.hw.DSB(DSBISH)

	cpu.WriteGPTBR(g.cfg.L0Base >> gptbrShift)
	cpu.WriteGPCCR(g.GPCCR())
	g.hw.ISB()

	g.hw.TLBIPAALLOS()
	g.hw.DSB(DSBISH)
	g.hw.ISB()
}

// Disable turns off the Granule Protection Check on the calling core, leaving
// all other GPCCR_EL3 fields untouched. It is only meant for controlled
// recovery and debug paths.
func (g *GPT) Disable(cpu CPU) {
	g.mustBeInstalled("Disable")

	gpccr := uint32(cpu.ReadGPCCR())
	bits.Clear(&gpccr, GPCCR_GPC)
	cpu.WriteGPCCR(uint64(gpccr))

	g.hw.DSB(DSBSY)
	g.hw.ISB()
}

// Enabled reports whether the Granule Protection Check is enabled on a core.
func Enabled(cpu CPU) bool {
	return cpu.ReadGPCCR()&(1<<GPCCR_GPC) != 0
}
