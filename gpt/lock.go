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
	"runtime"

	"gvisor.dev/gvisor/pkg/atomicbitops"
)

// Locker serializes PAS transitions, a single instance covers all granules.
//
// gvisor.dev/gvisor/pkg/sync.Mutex satisfies this interface.
type Locker interface {
	Lock()
	Unlock()
}

// spins between scheduler yields
const spinYield = 128

// SpinLock is a busy-wait Locker, a contending core keeps spinning until the
// lock is released, there is no timeout.
type SpinLock struct {
	state atomicbitops.Uint32
}

// Lock acquires the lock.
func (l *SpinLock) Lock() {
	for i := 1; !l.state.CompareAndSwap(0, 1); i++ {
		// goroutines standing in for cores must not starve the holder
		if i%spinYield == 0 {
			runtime.Gosched()
		}
	}
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.state.Store(0)
}

// NoLock is a Locker for single threaded use.
type NoLock struct{}

func (NoLock) Lock()   {}
func (NoLock) Unlock() {}
