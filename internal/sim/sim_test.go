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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// memory is a sparse physical memory
type memory map[uint64]uint64

func (m memory) Read64(pa uint64) (uint64, bool) {
	v, ok := m[pa]
	return v, ok
}

const (
	// PPS=4GB PGS=4KB L0GPTSZ=1GB SH=IS ORGN=IRGN=WBRAWA GPC=1
	gpccr  = 0x1_3500
	l0Base = 0x1000
	l1Base = 0x8000
)

func testMemory() memory {
	return memory{
		l0Base + 0*8: gpt.L0Block(gpt.NonSecure),
		l0Base + 1*8: gpt.L0Table(l1Base),
		l0Base + 2*8: gpt.L0Block(gpt.Any),
		l0Base + 3*8: 0,
		// 0x4000_0000-0x4000_ffff
		l1Base: gpt.L1Set(gpt.L1Fill(gpt.Realm), 1, gpt.Secure),
		// 0x4001_0000-0x4001_ffff
		l1Base + 8: 0xffff_ffff_ffff_ff0f,
	}
}

func TestCheck(t *testing.T) {
	m := NewMachine(1)
	cpu := m.CPUs[0]

	if pas, err := cpu.Check(memory{}, 0, gpt.NonSecureState); err != nil || pas != gpt.Any {
		t.Fatalf("Check with GPC disabled = %s, %v", pas, err)
	}

	cpu.WriteGPTBR(l0Base >> 12)
	cpu.WriteGPCCR(gpccr)

	mem := testMemory()

	for _, test := range []struct {
		name    string
		pa      uint64
		state   gpt.SecurityState
		want    gpt.PAS
		wantErr error
	}{
		{name: "block", pa: 0x1234_5000, state: gpt.NonSecureState, want: gpt.NonSecure},
		{name: "block denied", pa: 0x1234_5000, state: gpt.RealmState, want: gpt.NonSecure, wantErr: ErrDenied},
		{name: "any block", pa: 0x8000_0000, state: gpt.SecureState, want: gpt.Any},
		{name: "l1", pa: 0x4000_0000, state: gpt.RealmState, want: gpt.Realm},
		{name: "l1 gpi", pa: 0x4000_1000, state: gpt.SecureState, want: gpt.Secure},
		{name: "l1 gpi denied", pa: 0x4000_1fff, state: gpt.RealmState, want: gpt.Secure, wantErr: ErrDenied},
		{name: "l1 no access", pa: 0x4001_1000, state: gpt.RootState, want: gpt.NoAccess, wantErr: ErrDenied},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := cpu.Check(mem, test.pa, test.state)

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Got error %v, want %v", err, test.wantErr)
			}

			if got != test.want {
				t.Fatalf("Got %s, want %s", got, test.want)
			}
		})
	}
}

func TestCheckFaults(t *testing.T) {
	m := NewMachine(1)
	cpu := m.CPUs[0]

	cpu.WriteGPTBR(l0Base >> 12)
	cpu.WriteGPCCR(gpccr)

	for _, test := range []struct {
		name      string
		pa        uint64
		wantLevel int
	}{
		{name: "invalid L0 descriptor", pa: 0xc000_0000},
		{name: "address size", pa: 0x1_0000_0000},
		{name: "missing L1 descriptor", pa: 0x4002_0000, wantLevel: 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := cpu.Check(testMemory(), test.pa, gpt.RootState)

			var gpf *GPF

			if !errors.As(err, &gpf) {
				t.Fatalf("Got %v, want GPF", err)
			}

			if gpf.Level != test.wantLevel {
				t.Errorf("Got fault at level %d, want %d", gpf.Level, test.wantLevel)
			}
		})
	}

	mem := testMemory()
	mem[l1Base+8] = 0x1

	if _, err := cpu.Check(mem, 0x4001_0000, gpt.RootState); err == nil {
		t.Error("Check succeeded for invalid GPI")
	}
}

func TestInvalidate(t *testing.T) {
	m := NewMachine(2)
	mem := testMemory()

	for _, cpu := range m.CPUs {
		cpu.WriteGPTBR(l0Base >> 12)
		cpu.WriteGPCCR(gpccr)

		cpu.Check(mem, 0x4000_0000, gpt.RealmState)
		cpu.Check(mem, 0x4000_1000, gpt.SecureState)
	}

	mem[l1Base] = gpt.L1Fill(gpt.NonSecure)

	// stale until invalidated
	if pas, _ := m.CPUs[1].Check(mem, 0x4000_0000, gpt.NonSecureState); pas != gpt.Realm {
		t.Fatalf("Got %s before invalidation, want cached %s", pas, gpt.Realm)
	}

	m.TLBIRPAOS(0x4000_0000, 0x1000)

	for _, cpu := range m.CPUs {
		if got, want := cpu.Cached(), 1; got != want {
			t.Errorf("core %d: got %d cached entries, want %d", cpu.ID, got, want)
		}
		if pas, err := cpu.Check(mem, 0x4000_0000, gpt.NonSecureState); err != nil || pas != gpt.NonSecure {
			t.Errorf("core %d: got %s, %v after invalidation", cpu.ID, pas, err)
		}
	}

	m.TLBIPAALLOS()

	for _, cpu := range m.CPUs {
		if got := cpu.Cached(); got != 0 {
			t.Errorf("core %d: got %d cached entries after invalidate all", cpu.ID, got)
		}
	}
}

func TestEvents(t *testing.T) {
	m := NewMachine(1)

	m.DSB(gpt.DSBSY)

	if got := m.Events(); len(got) != 0 {
		t.Fatalf("Got events with tracing disabled: %v", got)
	}

	m.Trace = true

	m.CleanInvalidate(0x1000, 0x20)
	m.TLBIRPAOS(0x4000_0000, 0x1000)
	m.ISB()

	want := []string{
		"dc civac 0x1000+0x20",
		"tlbi rpaos 0x40000000+0x1000",
		"isb",
	}

	var got []string

	for _, e := range m.Events() {
		got = append(got, e.String())
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Got events diff (-want +got): %s", diff)
	}

	if got, want := m.Count(DSB), 1; got != want {
		t.Errorf("Got %d DSB, want %d", got, want)
	}

	m.Reset()

	if got := m.Count(DSB); got != 0 {
		t.Errorf("Got %d DSB after reset", got)
	}
}
