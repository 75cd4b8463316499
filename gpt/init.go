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
	"sort"

	"gvisor.dev/gvisor/pkg/hostarch"
	"k8s.io/klog/v2"
)

// minimum table alignment, GPTBR_EL3 and L0 table descriptors hold bits
// [51:12] of table addresses
const tableAlign = 1 << 12

// GPT represents a set of installed Granule Protection Tables and the
// geometry resolved to build them.
//
// A GPT is created once at boot by Init and shared by all cores for the
// lifetime of the system, only individual GPIs are mutated afterwards, by
// Transition.
type GPT struct {
	Geometry

	cfg Config

	l0 *arena
	l1 *pool

	mu Locker
	hw Maintenance

	installed bool
}

// Option configures optional GPT behaviour.
type Option func(*GPT)

// WithLocker replaces the default SpinLock serializing PAS transitions.
func WithLocker(l Locker) Option {
	return func(g *GPT) {
		g.mu = l
	}
}

// Init validates the configuration, builds the L0 and L1 tables for an ordered
// region list and publishes them to table walkers. It must be invoked once,
// on a single core, before any core enables the Granule Protection Check.
func Init(cfg Config, regions []Region, hw Maintenance, opts ...Option) (g *GPT, err error) {
	if hw == nil {
		return nil, configErrorf(ErrSelector, "missing maintenance primitives")
	}

	geo, err := resolveConfig(cfg)

	if err != nil {
		return
	}

	g = &GPT{
		Geometry: geo,
		cfg:      cfg,
		mu:       &SpinLock{},
		hw:       hw,
	}

	for _, opt := range opts {
		opt(g)
	}

	if err = g.validateRegions(regions); err != nil {
		return nil, err
	}

	count := g.l1Count(regions)

	if err = g.validateMemory(count); err != nil {
		return nil, err
	}

	klog.Infof("SM GPT init PPS:%s PGS:%s L0GPTSZ:%s regions:%d L1 tables:%d",
		g.PPS, g.PGS, g.L0GPTSZ, len(regions), count)

	g.l0 = newArena(cfg.L0Base, g.L0Entries)
	g.l1 = newPool(cfg.L1Base, count, g.L1Entries)

	tables := g.buildL0(regions)

	for _, r := range regions {
		if g.needsTable(r) {
			g.buildL1(r)
		}
	}

	if int(g.l1.next) != g.l1.count() {
		panic(fmt.Sprintf("gpt: %d L1 tables used, %d expected (%d table regions)", g.l1.next, count, tables))
	}

	if !cfg.Coherent {
		hw.CleanInvalidate(g.l0.base, g.l0.size())
		hw.CleanInvalidate(g.l1.base, g.l1.size())
	}

	hw.DSB(DSBISH)

	g.installed = true

	return g, nil
}

func resolveConfig(cfg Config) (g Geometry, err error) {
	l0 := cfg.L0GPTSZ

	if l0 != L0GPTSZ1GB {
		if _, ok := l0gptszBits[l0]; ok {
			klog.Warningf("SM GPT L0GPTSZ %s unsupported, using %s", l0, L0GPTSZ1GB)
			l0 = L0GPTSZ1GB
		}
	}

	if g, err = Resolve(cfg.PGS, cfg.PPS, l0); err != nil {
		return
	}

	if !g.Validated() {
		if !cfg.AllowUnvalidated {
			return g, configErrorf(ErrSelector, "only %s granules over %s are supported (got %s over %s)",
				PGS4KB, PPS4GB, g.PGS, g.PPS)
		}

		klog.Warningf("SM GPT using unvalidated geometry, %s granules over %s", g.PGS, g.PPS)
	}

	if !cfg.Unclaimed.Valid() {
		return g, configErrorf(ErrSelector, "invalid unclaimed PAS %s", cfg.Unclaimed)
	}

	return
}

func (g *GPT) validateRegions(regions []Region) error {
	if len(regions) == 0 {
		return configErrorf(ErrRegions, "empty region list")
	}

	ranges := make([]hostarch.AddrRange, 0, len(regions))

	for i, r := range regions {
		if !r.PAS.Valid() {
			return configErrorf(ErrRegions, "region %d %s has invalid PAS", i, r)
		}

		if r.Size == 0 {
			return configErrorf(ErrRegions, "region %d %s is empty", i, r)
		}

		if !aligned(r.Base, g.GranuleSize) || !aligned(r.Size, g.GranuleSize) {
			return configErrorf(ErrAlignment, "region %d %s not aligned to %s granules", i, r, g.PGS)
		}

		ar, ok := hostarch.Addr(r.Base).ToRange(r.Size)

		if !ok || uint64(ar.End) > g.ProtectedSize {
			return configErrorf(ErrRegions, "region %d %s exceeds protected space (%s)", i, r, g.PPS)
		}

		ranges = append(ranges, ar)
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Overlaps(ranges[i]) {
			return configErrorf(ErrRegions, "regions %v and %v overlap", ranges[i-1], ranges[i])
		}
	}

	return nil
}

func (g *GPT) validateMemory(count uint64) error {
	cfg := g.cfg

	l0Align := g.L0TableSize

	if l0Align < tableAlign {
		l0Align = tableAlign
	}

	if !aligned(cfg.L0Base, l0Align) {
		return configErrorf(ErrAlignment, "L0 table base %#x not aligned to %#x", cfg.L0Base, l0Align)
	}

	if !aligned(cfg.L1Base, tableAlign) {
		return configErrorf(ErrAlignment, "L1 pool base %#x not aligned to %#x", cfg.L1Base, tableAlign)
	}

	if cfg.L0Size < g.L0TableSize {
		return configErrorf(ErrMemory, "L0 table requires %d bytes (%d entries), %d available",
			g.L0TableSize, g.L0Entries, cfg.L0Size)
	}

	need := count * g.L1TableSize

	if cfg.L1Size < need {
		return configErrorf(ErrMemory, "%d L1 tables required (%d bytes), %d available (%d tables)",
			count, need, cfg.L1Size, cfg.L1Size/g.L1TableSize)
	}

	if count > 0 && cfg.L0Base < cfg.L1Base+need && cfg.L1Base < cfg.L0Base+g.L0TableSize {
		return configErrorf(ErrMemory, "L0 table [%#x-%#x) overlaps L1 pool [%#x-%#x)",
			cfg.L0Base, cfg.L0Base+g.L0TableSize, cfg.L1Base, cfg.L1Base+need)
	}

	return nil
}

func (g *GPT) mustBeInstalled(op string) {
	if g == nil || !g.installed {
		panic("gpt: " + op + " invoked before table installation")
	}
}

// Installed reports whether tables have been built and published.
func (g *GPT) Installed() bool {
	return g != nil && g.installed
}

// Config returns the configuration the tables were built with.
func (g *GPT) Config() Config {
	return g.cfg
}

// L1Tables returns the number of L1 tables allocated at Init.
func (g *GPT) L1Tables() int {
	return g.l1.count()
}

// Attach returns the tables for use by a later boot stage running on a core
// where they have already been enabled, it never builds tables and is fatal
// if they are not installed and enabled.
func Attach(g *GPT, cpu CPU) *GPT {
	g.mustBeInstalled("Attach")

	if !Enabled(cpu) {
		panic("gpt: Attach invoked with Granule Protection Check disabled")
	}

	if base := cpu.ReadGPTBR() << gptbrShift; base != g.cfg.L0Base {
		panic(fmt.Sprintf("gpt: GPTBR_EL3 points to %#x, tables installed at %#x", base, g.cfg.L0Base))
	}

	return g
}
