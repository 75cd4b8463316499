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

// The gptctl tool builds the Granule Protection Tables of a platform layout on
// a simulated machine, to inspect them and exercise PAS transitions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
	"github.com/transparency-dev/armored-witness-gpt/internal/sim"
	"github.com/transparency-dev/armored-witness-gpt/monitor"
	"github.com/transparency-dev/armored-witness-gpt/platform"
)

type Config struct {
	platform string
	layout   string

	status     bool
	dumpLayout bool
	trace      bool

	transitions []transition
	lookups     []uint64

	stress int
	cores  int
}

var conf *Config

func init() {
	klog.InitFlags(nil)

	conf = &Config{}

	flag.StringVar(&conf.platform, "platform", "scenario", fmt.Sprintf("built-in platform layout (%s)", strings.Join(platform.Builtins(), ", ")))
	flag.StringVar(&conf.layout, "layout", "", "platform layout YAML file (overrides -platform)")
	flag.BoolVar(&conf.status, "s", false, "print GPT status")
	flag.BoolVar(&conf.dumpLayout, "dump_layout", false, "print platform layout YAML")
	flag.BoolVar(&conf.trace, "trace", false, "print maintenance operations")
	flag.Func("t", "PAS transition addr:caller:target (e.g. 0x40000000:Secure:NonSecure), can be repeated", func(s string) error {
		t, err := parseTransition(s)
		conf.transitions = append(conf.transitions, t)
		return err
	})
	flag.Func("lookup", "granule PAS lookup address, can be repeated", func(s string) error {
		addr, err := platform.ParseSize(s)
		conf.lookups = append(conf.lookups, addr)
		return err
	})
	flag.IntVar(&conf.stress, "stress", 0, "random transitions per core")
	flag.IntVar(&conf.cores, "cores", 4, "simulated cores")
}

func loadLayout() (*platform.Layout, error) {
	if len(conf.layout) > 0 {
		return platform.LoadFile(conf.layout)
	}

	return platform.Builtin(conf.platform)
}

func main() {
	var err error

	defer func() {
		if flag.NFlag() == 0 {
			flag.PrintDefaults()
		}

		if err != nil {
			klog.Exitf("fatal error, %s", err)
		}
	}()

	flag.Parse()

	if conf.cores < 1 {
		err = errors.New("at least one core is required")
		return
	}

	layout, err := loadLayout()

	if err != nil {
		return
	}

	if conf.dumpLayout {
		var buf []byte

		if buf, err = layout.Marshal(); err != nil {
			return
		}

		os.Stdout.Write(buf)
	}

	machine := sim.NewMachine(conf.cores)
	machine.Trace = conf.trace

	var cpus []gpt.CPU

	for _, cpu := range machine.CPUs {
		cpus = append(cpus, cpu)
	}

	m, err := monitor.Boot(context.Background(), layout, machine, cpus)

	if err != nil {
		return
	}

	for _, t := range conf.transitions {
		if terr := m.GPT.Transition(t.addr, t.caller, t.target); terr != nil {
			fmt.Printf("%s: %v (errno %d)\n", t, terr, gpt.Errno(terr))
		} else {
			fmt.Printf("%s: ok\n", t)
		}
	}

	for _, addr := range conf.lookups {
		var res, walked string

		if l, lerr := m.Lookup(addr); lerr != nil {
			res = lerr.Error()
		} else {
			res = fmt.Sprintf("%s (%s)", l.PAS, l.Region)
		}

		if pas, werr := machine.CPUs[0].Check(m.GPT, addr, gpt.RootState); werr != nil && !errors.Is(werr, sim.ErrDenied) {
			walked = werr.Error()
		} else {
			walked = pas.String()
		}

		fmt.Printf("%#012x: %s, table walk: %s\n", addr, res, walked)
	}

	if conf.stress > 0 {
		if err = stress(m, machine, conf.stress); err != nil {
			return
		}
	}

	if conf.status {
		s, serr := m.Status()

		if err = serr; err != nil {
			return
		}

		fmt.Println(s.Print())
	}

	if conf.trace {
		for _, e := range machine.Events() {
			fmt.Println(e)
		}
	}
}
