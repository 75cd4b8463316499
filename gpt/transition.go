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
	"k8s.io/klog/v2"
)

// Allowed reports whether a caller may move granules from or to a PAS, Secure
// callers can only use the Secure and Non-secure PAS, Realm callers the Realm
// and Non-secure PAS.
func Allowed(caller SecurityState, pas PAS) bool {
	switch caller {
	case SecureState:
		return pas == Secure || pas == NonSecure
	case RealmState:
		return pas == Realm || pas == NonSecure
	}

	return false
}

// Transition changes the PAS of the granule at physical address pa to target
// on behalf of a caller in a given security state.
//
// The request is validated before any lookup, then the granule current PAS
// is re-validated under the global transition lock. Granules mapped through
// L0 block descriptors are never transitionable. Errors are returned as
// TransitionError values and leave the tables untouched.
func (g *GPT) Transition(pa uint64, caller SecurityState, target PAS) error {
	if !Allowed(caller, target) {
		return ErrInvalidParameter
	}

	g.mustBeInstalled("Transition")

	if !g.Contains(pa) || !aligned(pa, g.GranuleSize) {
		return ErrInvalidAddress
	}

	desc := g.l0.load(uint64(g.L0Index(pa)))

	if L0Type(desc) != Table {
		return ErrPermissionDenied
	}

	s, ok := g.l1.slab(L0TableAddr(desc))

	if !ok {
		return ErrPermissionDenied
	}

	w := g.l1.word(s, g.L1Index(pa))
	i := g.GPIIndex(pa)

	g.mu.Lock()
	defer g.mu.Unlock()

	l1 := g.l1.load(w)
	current := L1Get(l1, i)

	// another core might have completed a transition since the request
	// was validated
	if !Allowed(caller, current) {
		return ErrPermissionDenied
	}

	g.l1.store(w, L1Set(l1, i, target))

	g.hw.DSB(DSBISHST)
	g.hw.TLBIRPAOS(pa, g.GranuleSize)
	g.hw.DSB(DSBOSH)
	g.hw.ISB()

	klog.V(2).Infof("SM GPT %#x %s -> %s (%s)", pa, current, target, caller)

	return nil
}

// Delegate moves a Non-secure granule to the Realm PAS on behalf of the Realm
// Management Monitor.
func (g *GPT) Delegate(pa uint64) error {
	return g.Transition(pa, RealmState, Realm)
}

// Undelegate returns a Realm granule to the Non-secure PAS on behalf of the
// Realm Management Monitor.
func (g *GPT) Undelegate(pa uint64) error {
	return g.Transition(pa, RealmState, NonSecure)
}
