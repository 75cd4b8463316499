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

// Package platform provides the boot time GPT configuration and PAS region
// layouts of supported platforms, either built in or loaded from YAML
// documents.
package platform

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

//go:embed layouts/*.yaml
var layouts embed.FS

// Region represents a named PAS region.
type Region struct {
	Name  string `yaml:"name,omitempty"`
	Base  Addr   `yaml:"base"`
	Size  Size   `yaml:"size"`
	PAS   string `yaml:"pas"`
	Table bool   `yaml:"table,omitempty"`
}

// Memory represents a physical memory range reserved for tables.
type Memory struct {
	Base Addr `yaml:"base"`
	Size Size `yaml:"size"`
}

// Layout represents a platform GPT configuration and its ordered PAS region
// list.
type Layout struct {
	Name string `yaml:"name"`

	Granule string `yaml:"granule"`
	PPS     string `yaml:"pps"`
	L0GPTSZ string `yaml:"l0gptsz"`

	L0 Memory `yaml:"l0"`
	L1 Memory `yaml:"l1"`

	Unclaimed        string `yaml:"unclaimed,omitempty"`
	Coherent         bool   `yaml:"coherent,omitempty"`
	AllowUnvalidated bool   `yaml:"allow_unvalidated,omitempty"`

	Regions []Region `yaml:"regions"`
}

func parseSelector[T fmt.Stringer](kind string, s string, all ...T) (t T, err error) {
	for _, v := range all {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}

	return t, fmt.Errorf("unsupported %s %q", kind, s)
}

// Config returns the GPT configuration of the layout.
func (l *Layout) Config() (cfg gpt.Config, err error) {
	if cfg.PGS, err = parseSelector("granule", l.Granule, gpt.PGS4KB, gpt.PGS16KB, gpt.PGS64KB); err != nil {
		return
	}

	if cfg.PPS, err = parseSelector("pps", l.PPS,
		gpt.PPS4GB, gpt.PPS64GB, gpt.PPS1TB, gpt.PPS4TB, gpt.PPS16TB, gpt.PPS256TB, gpt.PPS4PB); err != nil {
		return
	}

	if len(l.L0GPTSZ) == 0 {
		cfg.L0GPTSZ = gpt.L0GPTSZ1GB
	} else if cfg.L0GPTSZ, err = parseSelector("l0gptsz", l.L0GPTSZ,
		gpt.L0GPTSZ1GB, gpt.L0GPTSZ16GB, gpt.L0GPTSZ64GB, gpt.L0GPTSZ512GB); err != nil {
		return
	}

	if len(l.Unclaimed) > 0 {
		if cfg.Unclaimed, err = gpt.ParsePAS(l.Unclaimed); err != nil {
			return
		}
	}

	cfg.L0Base = uint64(l.L0.Base)
	cfg.L0Size = uint64(l.L0.Size)
	cfg.L1Base = uint64(l.L1.Base)
	cfg.L1Size = uint64(l.L1.Size)
	cfg.Coherent = l.Coherent
	cfg.AllowUnvalidated = l.AllowUnvalidated

	return
}

// GPTRegions returns the layout regions in table construction order.
func (l *Layout) GPTRegions() (regions []gpt.Region, err error) {
	for _, r := range l.Regions {
		pas, err := gpt.ParsePAS(r.PAS)

		if err != nil {
			return nil, fmt.Errorf("region %q, %v", r.Name, err)
		}

		regions = append(regions, gpt.Region{
			Base:  uint64(r.Base),
			Size:  uint64(r.Size),
			PAS:   pas,
			Table: r.Table,
		})
	}

	return
}

// Init builds and installs the layout tables.
func (l *Layout) Init(hw gpt.Maintenance, opts ...gpt.Option) (*gpt.GPT, error) {
	cfg, err := l.Config()

	if err != nil {
		return nil, fmt.Errorf("platform %s: %v", l.Name, err)
	}

	regions, err := l.GPTRegions()

	if err != nil {
		return nil, fmt.Errorf("platform %s: %v", l.Name, err)
	}

	klog.Infof("SM GPT platform %s, %d regions", l.Name, len(regions))

	return gpt.Init(cfg, regions, hw, opts...)
}

// Region returns the name of the layout region containing a physical
// address.
func (l *Layout) Region(pa uint64) (string, bool) {
	for _, r := range l.Regions {
		if pa >= uint64(r.Base) && pa-uint64(r.Base) < uint64(r.Size) {
			return r.Name, true
		}
	}

	return "", false
}

// Marshal returns the YAML encoding of the layout.
func (l *Layout) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(l); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Load parses a YAML layout, unknown fields are rejected.
func Load(r io.Reader) (*Layout, error) {
	l := &Layout{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(l); err != nil {
		return nil, fmt.Errorf("invalid layout, %v", err)
	}

	if len(l.Name) == 0 {
		return nil, fmt.Errorf("invalid layout, missing name")
	}

	if _, err := l.Config(); err != nil {
		return nil, fmt.Errorf("invalid layout %s, %v", l.Name, err)
	}

	if _, err := l.GPTRegions(); err != nil {
		return nil, fmt.Errorf("invalid layout %s, %v", l.Name, err)
	}

	return l, nil
}

// LoadFile parses a YAML layout file.
func LoadFile(name string) (*Layout, error) {
	f, err := os.Open(name)

	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Builtin returns a built-in platform layout.
func Builtin(name string) (*Layout, error) {
	f, err := layouts.Open(path.Join("layouts", name+".yaml"))

	if err != nil {
		return nil, fmt.Errorf("unknown platform %q (available: %s)", name, strings.Join(Builtins(), ", "))
	}
	defer f.Close()

	return Load(f)
}

// Builtins returns the names of all built-in platform layouts.
func Builtins() (names []string) {
	entries, _ := layouts.ReadDir("layouts")

	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}

	sort.Strings(names)

	return
}
