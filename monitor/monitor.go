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

// Package monitor implements the secure monitor front end of the granule
// protection services: monitor call dispatch, RPC receiver and control
// interface.
package monitor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/api"
	"github.com/transparency-dev/armored-witness-gpt/api/rpc"
	"github.com/transparency-dev/armored-witness-gpt/gpt"
	"github.com/transparency-dev/armored-witness-gpt/platform"
)

// Monitor represents the secure monitor state shared by all cores.
type Monitor struct {
	// GPT holds the installed tables.
	GPT *gpt.GPT
	// Layout is the platform layout the tables were built from.
	Layout *platform.Layout
	// CPUs holds the system registers of each core.
	CPUs []gpt.CPU

	// Revision and Build identify the running firmware.
	Revision string
	Build    string
}

// Boot builds and installs the platform tables on the primary core, then
// enables the Granule Protection Check on every core.
func Boot(ctx context.Context, layout *platform.Layout, hw gpt.Maintenance, cpus []gpt.CPU, opts ...gpt.Option) (*Monitor, error) {
	if len(cpus) == 0 {
		return nil, fmt.Errorf("no cores")
	}

	g, err := layout.Init(hw, opts...)

	if err != nil {
		return nil, err
	}

	m := &Monitor{
		GPT:    g,
		Layout: layout,
		CPUs:   cpus,
	}

	// primary core
	g.Enable(cpus[0])

	eg, ctx := errgroup.WithContext(ctx)

	for i, cpu := range cpus[1:] {
		eg.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}

			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("core %d: %v", i+1, r)
				}
			}()

			g.Enable(cpu)
			gpt.Attach(g, cpu)

			klog.V(1).Infof("SM GPT enabled on core %d", i+1)

			return
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	klog.Infof("SM GPT enabled on %d cores", len(cpus))

	return m, nil
}

// Enabled reports whether the Granule Protection Check is enabled on all
// cores.
func (m *Monitor) Enabled() bool {
	for _, cpu := range m.CPUs {
		if !gpt.Enabled(cpu) {
			return false
		}
	}

	return len(m.CPUs) > 0
}

// Lookup returns the PAS of a granule and its platform region.
func (m *Monitor) Lookup(addr uint64) (res rpc.Lookup, err error) {
	res.Addr = addr

	if res.PAS, err = m.GPT.Lookup(addr); err != nil {
		return
	}

	res.Region, _ = m.Layout.Region(addr)

	return
}

// Status returns the monitor GPT status.
func (m *Monitor) Status() (s *api.Status, err error) {
	cfg := m.GPT.Config()

	s = &api.Status{
		Platform: m.Layout.Name,
		Version:  api.Version.String(),
		Runtime:  fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		PPS:      m.GPT.PPS.String(),
		PGS:      m.GPT.PGS.String(),
		L0GPTSZ:  m.GPT.L0GPTSZ.String(),
		L0Base:   cfg.L0Base,
		L1Base:   cfg.L1Base,
		L1Tables: uint32(m.GPT.L1Tables()),
		Enabled:  m.Enabled(),
	}

	if s.Measurement, err = m.GPT.Measure(); err != nil {
		return nil, err
	}

	for _, e := range m.GPT.Dump() {
		s.Entries = append(s.Entries, e.String())
	}

	return
}

// Measurement returns the table measurement of the running platform.
func (m *Monitor) Measurement() (api.Measurement, error) {
	root, err := m.GPT.Measure()

	if err != nil {
		return api.Measurement{}, err
	}

	return api.Measurement{
		Platform: m.Layout.Name,
		Version:  api.Version.String(),
		Root:     root,
	}, nil
}
