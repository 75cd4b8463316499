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

package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
	"github.com/transparency-dev/armored-witness-gpt/internal/sim"
	"github.com/transparency-dev/armored-witness-gpt/monitor"
	"github.com/transparency-dev/armored-witness-gpt/platform"
)

// granules sampled for each table mapped L0 entry
const stressGranules = 64

type transition struct {
	addr   uint64
	caller gpt.SecurityState
	target gpt.PAS
}

func (t transition) String() string {
	return fmt.Sprintf("%#012x %s -> %s", t.addr, t.caller, t.target)
}

var callers = map[string]gpt.SecurityState{
	"secure":    gpt.SecureState,
	"nonsecure": gpt.NonSecureState,
	"realm":     gpt.RealmState,
	"root":      gpt.RootState,
}

func parseTransition(s string) (t transition, err error) {
	f := strings.Split(s, ":")

	if len(f) != 3 {
		return t, fmt.Errorf("invalid transition %q, expected addr:caller:target", s)
	}

	if t.addr, err = platform.ParseSize(f[0]); err != nil {
		return
	}

	caller, ok := callers[strings.ToLower(f[1])]

	if !ok {
		return t, fmt.Errorf("invalid caller %q", f[1])
	}

	t.caller = caller
	t.target, err = gpt.ParsePAS(f[2])

	return
}

// stressGranuleSet returns a sample of the granules mapped through L1 tables.
func stressGranuleSet(g *gpt.GPT, r *rand.Rand) (granules []uint64) {
	for _, e := range g.Dump() {
		if e.Type != gpt.Table {
			continue
		}

		n := g.ChunkSize / g.GranuleSize

		for i := 0; i < stressGranules; i++ {
			granules = append(granules, e.Base+r.Uint64N(n)*g.GranuleSize)
		}
	}

	return
}

// stress runs concurrent random transitions, one goroutine per simulated
// core, then verifies that the table walk of each core agrees with the tables.
func stress(m *monitor.Monitor, machine *sim.Machine, rounds int) error {
	g := m.GPT
	granules := stressGranuleSet(g, rand.New(rand.NewPCG(1, 2)))

	if len(granules) == 0 {
		return errors.New("no table mapped granules")
	}

	var ok, denied atomic.Uint64

	bar := pb.StartNew(rounds * len(machine.CPUs))
	eg := errgroup.Group{}

	for _, cpu := range machine.CPUs {
		eg.Go(func() error {
			r := rand.New(rand.NewPCG(uint64(cpu.ID), 0x6770))

			for i := 0; i < rounds; i++ {
				addr := granules[r.IntN(len(granules))]
				caller := gpt.SecureState
				target := gpt.Secure

				if r.IntN(2) == 0 {
					caller = gpt.RealmState
					target = gpt.Realm
				}

				if r.IntN(2) == 0 {
					target = gpt.NonSecure
				}

				switch err := g.Transition(addr, caller, target); {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, gpt.ErrPermissionDenied):
					denied.Add(1)
				default:
					return fmt.Errorf("core %d: %s: %v", cpu.ID, transition{addr, caller, target}, err)
				}

				// table walks never fault on table mapped granules
				if _, err := cpu.Check(g, addr, caller); err != nil && !errors.Is(err, sim.ErrDenied) {
					return fmt.Errorf("core %d: %#x: %v", cpu.ID, addr, err)
				}

				bar.Increment()
			}

			return nil
		})
	}

	err := eg.Wait()
	bar.Finish()

	if err != nil {
		return err
	}

	for _, addr := range granules {
		want, err := g.Lookup(addr)

		if err != nil {
			return err
		}

		for _, cpu := range machine.CPUs {
			if got, _ := cpu.Check(g, addr, gpt.RootState); got != want {
				return fmt.Errorf("core %d: %#x walked %s, table holds %s", cpu.ID, addr, got, want)
			}
		}
	}

	klog.Infof("stress: %d transitions, %d denied, %d TLBI RPAOS", ok.Load(), denied.Load(), machine.Count(sim.TLBIPoint))

	return nil
}
