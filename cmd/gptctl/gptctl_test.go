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
	"context"
	"testing"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
	"github.com/transparency-dev/armored-witness-gpt/internal/sim"
	"github.com/transparency-dev/armored-witness-gpt/monitor"
	"github.com/transparency-dev/armored-witness-gpt/platform"
)

func TestParseTransition(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    transition
		wantErr bool
	}{
		{in: "0x40000000:Secure:NonSecure", want: transition{0x4000_0000, gpt.SecureState, gpt.NonSecure}},
		{in: "1GB:realm:Realm", want: transition{1 << 30, gpt.RealmState, gpt.Realm}},
		{in: "0x1000:root:Root", want: transition{0x1000, gpt.RootState, gpt.Root}},
		{in: "0x1000:Secure", wantErr: true},
		{in: "0x1000:Monitor:Secure", wantErr: true},
		{in: "0x1000:Secure:secure", wantErr: true},
		{in: "addr:Secure:Secure", wantErr: true},
	} {
		t.Run(test.in, func(t *testing.T) {
			got, err := parseTransition(test.in)

			if gotErr := err != nil; gotErr != test.wantErr {
				t.Fatalf("Got error %v, want error %t", err, test.wantErr)
			}

			if !test.wantErr && got != test.want {
				t.Fatalf("Got %s, want %s", got, test.want)
			}
		})
	}
}

func TestStress(t *testing.T) {
	for _, name := range platform.Builtins() {
		t.Run(name, func(t *testing.T) {
			layout, err := platform.Builtin(name)
			if err != nil {
				t.Fatalf("Builtin: %v", err)
			}

			machine := sim.NewMachine(4)

			var cpus []gpt.CPU

			for _, cpu := range machine.CPUs {
				cpus = append(cpus, cpu)
			}

			m, err := monitor.Boot(context.Background(), layout, machine, cpus)
			if err != nil {
				t.Fatalf("Boot: %v", err)
			}

			if err := stress(m, machine, 200); err != nil {
				t.Fatalf("stress: %v", err)
			}
		})
	}
}
