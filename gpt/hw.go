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

// Barrier represents a data synchronization barrier domain and type.
type Barrier int

const (
	// DSB ISHST
	DSBISHST Barrier = iota
	// DSB ISH
	DSBISH
	// DSB OSH
	DSBOSH
	// DSB SY
	DSBSY
)

func (b Barrier) String() string {
	switch b {
	case DSBISHST:
		return "dsb ishst"
	case DSBISH:
		return "dsb ish"
	case DSBOSH:
		return "dsb osh"
	case DSBSY:
		return "dsb sy"
	}

	return "dsb ?"
}

// CPU represents the per-core system registers controlling the Granule
// Protection Check.
type CPU interface {
	// ReadGPCCR returns GPCCR_EL3.
	ReadGPCCR() uint64
	// WriteGPCCR sets GPCCR_EL3.
	WriteGPCCR(val uint64)
	// ReadGPTBR returns GPTBR_EL3.
	ReadGPTBR() uint64
	// WriteGPTBR sets GPTBR_EL3.
	WriteGPTBR(val uint64)
}

// Maintenance represents the cache, TLB and barrier primitives required to
// publish table updates to table walkers on all cores.
type Maintenance interface {
	// CleanInvalidate writes back and invalidates data cache lines
	// covering [base, base+size).
	CleanInvalidate(base uint64, size uint64)
	// DSB issues a data synchronization barrier.
	DSB(b Barrier)
	// ISB issues an instruction synchronization barrier.
	ISB()
	// TLBIPAALLOS invalidates all cached GPT information, broadcast to
	// all cores in the outer shareable domain.
	TLBIPAALLOS()
	// TLBIRPAOS invalidates cached GPT information for the granule at pa,
	// broadcast to all cores in the outer shareable domain.
	TLBIRPAOS(pa uint64, size uint64)
}
