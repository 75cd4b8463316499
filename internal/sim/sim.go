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

// Package sim provides a simulated multi-core machine implementing the
// hardware collaborators of the gpt package, for tests and host tools.
package sim

import (
	"fmt"

	"gvisor.dev/gvisor/pkg/atomicbitops"
	"gvisor.dev/gvisor/pkg/sync"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// EventType represents a maintenance operation.
type EventType int

const (
	CleanInvalidate EventType = iota
	DSB
	ISB
	TLBIAll
	TLBIPoint
)

func (t EventType) String() string {
	switch t {
	case CleanInvalidate:
		return "dc civac"
	case DSB:
		return "dsb"
	case ISB:
		return "isb"
	case TLBIAll:
		return "tlbi paallos"
	case TLBIPoint:
		return "tlbi rpaos"
	}

	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event represents a maintenance operation issued on the machine.
type Event struct {
	Type    EventType
	Barrier gpt.Barrier
	Addr    uint64
	Size    uint64
}

func (e Event) String() string {
	switch e.Type {
	case DSB:
		return e.Barrier.String()
	case CleanInvalidate, TLBIPoint:
		return fmt.Sprintf("%s %#x+%#x", e.Type, e.Addr, e.Size)
	}

	return e.Type.String()
}

// Machine represents a set of cores sharing physical memory, it implements
// gpt.Maintenance.
type Machine struct {
	mu sync.Mutex

	// CPUs holds the machine cores.
	CPUs []*CPU

	// Trace enables recording of all maintenance operations in Events.
	Trace bool

	events []Event
	counts map[EventType]int
}

// NewMachine returns a machine with n cores, with the Granule Protection
// Check disabled.
func NewMachine(n int) *Machine {
	m := &Machine{
		counts: make(map[EventType]int),
	}

	for i := 0; i < n; i++ {
		m.CPUs = append(m.CPUs, &CPU{
			ID:      i,
			machine: m,
			cache:   make(map[uint64]gpt.PAS),
		})
	}

	return m
}

func (m *Machine) record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[e.Type]++

	if m.Trace {
		m.events = append(m.events, e)
	}
}

// Events returns the recorded maintenance operations.
func (m *Machine) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Event(nil), m.events...)
}

// Count returns the number of maintenance operations of a given type.
func (m *Machine) Count(t EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counts[t]
}

// Reset clears recorded events and counters.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
	m.counts = make(map[EventType]int)
}

// CleanInvalidate implements gpt.Maintenance.
func (m *Machine) CleanInvalidate(base uint64, size uint64) {
	m.record(Event{Type: CleanInvalidate, Addr: base, Size: size})
}

// DSB implements gpt.Maintenance.
func (m *Machine) DSB(b gpt.Barrier) {
	m.record(Event{Type: DSB, Barrier: b})
}

// ISB implements gpt.Maintenance.
func (m *Machine) ISB() {
	m.record(Event{Type: ISB})
}

// TLBIPAALLOS implements gpt.Maintenance, cached GPT information is dropped
// on all cores.
func (m *Machine) TLBIPAALLOS() {
	m.record(Event{Type: TLBIAll})

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cpu := range m.CPUs {
		cpu.cache = make(map[uint64]gpt.PAS)
	}
}

// TLBIRPAOS implements gpt.Maintenance, cached GPT information for the
// granule is dropped on all cores.
func (m *Machine) TLBIRPAOS(pa uint64, size uint64) {
	m.record(Event{Type: TLBIPoint, Addr: pa, Size: size})

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cpu := range m.CPUs {
		for addr := range cpu.cache {
			if addr >= pa && addr < pa+size {
				delete(cpu.cache, addr)
			}
		}
	}
}

// CPU represents a single core, it implements gpt.CPU.
type CPU struct {
	ID int

	machine *Machine

	gpccr atomicbitops.Uint64
	gptbr atomicbitops.Uint64

	// cached GPIs indexed by granule address, protected by machine.mu
	cache map[uint64]gpt.PAS
}

// ReadGPCCR implements gpt.CPU.
func (c *CPU) ReadGPCCR() uint64 {
	return c.gpccr.Load()
}

// WriteGPCCR implements gpt.CPU.
func (c *CPU) WriteGPCCR(val uint64) {
	c.gpccr.Store(val)
}

// ReadGPTBR implements gpt.CPU.
func (c *CPU) ReadGPTBR() uint64 {
	return c.gptbr.Load()
}

// WriteGPTBR implements gpt.CPU.
func (c *CPU) WriteGPTBR(val uint64) {
	c.gptbr.Store(val)
}

// Cached returns the number of GPIs cached by the core.
func (c *CPU) Cached() int {
	c.machine.mu.Lock()
	defer c.machine.mu.Unlock()

	return len(c.cache)
}
