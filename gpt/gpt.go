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

// Package gpt implements construction, installation and runtime mutation of
// Arm Granule Protection Tables (GPT), the two level lookup structure
// consulted by the Granule Protection Check to tag every granule of physical
// memory with a Physical Address Space (PAS).
//
// Tables are built once at boot by Init from an ordered list of regions, each
// core then enables the check with Enable, and for the remaining lifetime of
// the system Secure and Realm software can move individual granules between
// their own PAS and the Non-secure PAS with Transition.
//
// Hardware collaborators (system registers, cache maintenance, TLB
// invalidation) are consumed through the CPU and Maintenance interfaces.
package gpt

import (
	"fmt"
)

// PAS represents a Granule Protection Information (GPI) code, the 4-bit tag
// stored for each granule.
type PAS uint8

// GPI encodings, Arm ARM D8.3.
const (
	NoAccess  PAS = 0x0
	Secure    PAS = 0x8
	NonSecure PAS = 0x9
	Root      PAS = 0xa
	Realm     PAS = 0xb
	Any       PAS = 0xf
)

var pasNames = map[PAS]string{
	NoAccess:  "NoAccess",
	Secure:    "Secure",
	NonSecure: "NonSecure",
	Root:      "Root",
	Realm:     "Realm",
	Any:       "Any",
}

// Valid reports whether p is an architecturally defined GPI.
func (p PAS) Valid() bool {
	_, ok := pasNames[p]
	return ok
}

func (p PAS) String() string {
	if s, ok := pasNames[p]; ok {
		return s
	}

	return fmt.Sprintf("PAS(%#x)", uint8(p))
}

// PASOf returns the PAS held in a raw register or message value, values which
// do not fit a GPI are rejected with ErrInvalidParameter.
func PASOf(v uint64) (PAS, error) {
	if v > gpiMask {
		return NoAccess, ErrInvalidParameter
	}

	return PAS(v), nil
}

// ParsePAS returns the PAS matching a name as returned by PAS.String
// (case sensitive).
func ParsePAS(s string) (PAS, error) {
	for p, name := range pasNames {
		if name == s {
			return p, nil
		}
	}

	return NoAccess, fmt.Errorf("unknown PAS %q", s)
}

// SecurityState represents the security state of a monitor call originator.
type SecurityState int

const (
	SecureState SecurityState = iota
	NonSecureState
	RealmState
	RootState
)

func (s SecurityState) String() string {
	switch s {
	case SecureState:
		return "Secure"
	case NonSecureState:
		return "NonSecure"
	case RealmState:
		return "Realm"
	case RootState:
		return "Root"
	}

	return fmt.Sprintf("SecurityState(%d)", int(s))
}

// PAS returns the physical address space owned by a security state.
func (s SecurityState) PAS() PAS {
	switch s {
	case SecureState:
		return Secure
	case NonSecureState:
		return NonSecure
	case RealmState:
		return Realm
	case RootState:
		return Root
	}

	return NoAccess
}

// Region represents a physical range [Base, Base+Size) assigned to a PAS at
// boot.
type Region struct {
	Base uint64
	Size uint64
	PAS  PAS

	// Table forces fine grained (L1) mapping even when the region could be
	// mapped with L0 block descriptors, this is required for any granule
	// that must later be transitioned.
	Table bool
}

// End returns the first address past the region.
func (r Region) End() uint64 {
	return r.Base + r.Size
}

func (r Region) String() string {
	kind := "block"

	if r.Table {
		kind = "table"
	}

	return fmt.Sprintf("[%#x-%#x) %s (%s)", r.Base, r.End(), r.PAS, kind)
}

// Config represents the boot time GPT configuration.
type Config struct {
	// PGS selects the physical granule size.
	PGS Granule
	// PPS selects the size of the protected physical address space.
	PPS PPS
	// L0GPTSZ selects the bytes covered by each L0 entry.
	L0GPTSZ L0Size

	// L0Base and L0Size describe the memory reserved for the L0 table.
	L0Base uint64
	L0Size uint64

	// L1Base and L1Size describe the memory pool reserved for L1 tables.
	L1Base uint64
	L1Size uint64

	// Unclaimed is the PAS given to granules which are not covered by
	// any region, the zero value leaves them inaccessible.
	Unclaimed PAS

	// Coherent skips cache maintenance of the table memory, it must
	// only be set when table walks are coherent with the boot core data
	// cache.
	Coherent bool

	// AllowUnvalidated permits geometries other than 4KB granules over a
	// 4GB protected space.
	AllowUnvalidated bool
}
