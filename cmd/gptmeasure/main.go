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

// The gptmeasure tool produces signed measurements of the boot time
// Granule Protection Tables of a platform layout, and verifies them.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"golang.org/x/mod/sumdb/note"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/api"
	"github.com/transparency-dev/armored-witness-gpt/internal/sim"
	"github.com/transparency-dev/armored-witness-gpt/platform"
)

var (
	platformName = flag.String("platform", "fvp", "Built-in platform layout to measure.")
	layoutFile   = flag.String("layout", "", "Platform layout YAML file to measure (overrides -platform).")
	signKeyFile  = flag.String("sign_key", "", "File containing a Note signer key to sign the measurement.")
	outputFile   = flag.String("output_file", "", "File to write the signed measurement to (default stdout).")
	verifyKey    = flag.String("verify_key", "", "File containing a Note verifier key, verifies the measurement in -input_file.")
	inputFile    = flag.String("input_file", "", "Signed measurement to verify.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	layout := layoutOrDie()
	m := measureOrDie(layout)

	if len(*verifyKey) > 0 {
		verify(m, verifierOrDie(*verifyKey))
		return
	}

	if len(*signKeyFile) == 0 {
		klog.Exitf("Either -sign_key or -verify_key must be specified")
	}

	signed, err := m.Sign(signerOrDie(*signKeyFile))
	if err != nil {
		klog.Exitf("Failed to sign measurement: %v", err)
	}

	if len(*outputFile) == 0 {
		os.Stdout.Write(signed)
		return
	}

	if err := os.WriteFile(*outputFile, signed, 0o644); err != nil {
		klog.Exitf("WriteFile: %v", err)
	}

	klog.Infof("Wrote %d bytes of signed measurement to %q", len(signed), *outputFile)
}

func layoutOrDie() *platform.Layout {
	var l *platform.Layout
	var err error

	if len(*layoutFile) > 0 {
		l, err = platform.LoadFile(*layoutFile)
	} else {
		l, err = platform.Builtin(*platformName)
	}

	if err != nil {
		klog.Exitf("Failed to load layout: %v", err)
	}

	return l
}

// measureOrDie builds the layout tables on a simulated machine and returns
// their measurement.
func measureOrDie(l *platform.Layout) api.Measurement {
	g, err := l.Init(sim.NewMachine(1))
	if err != nil {
		klog.Exitf("Failed to build %s tables: %v", l.Name, err)
	}

	root, err := g.Measure()
	if err != nil {
		klog.Exitf("Measure: %v", err)
	}

	m := api.Measurement{
		Platform: l.Name,
		Version:  api.Version.String(),
		Root:     root,
	}

	klog.Infof("Measurement:\n%s", m.Text())

	return m
}

func verify(want api.Measurement, v note.Verifier) {
	b, err := os.ReadFile(*inputFile)
	if err != nil {
		klog.Exitf("Failed to read measurement %q: %v", *inputFile, err)
	}

	got, err := api.OpenMeasurement(b, v)
	if err != nil {
		klog.Exitf("Failed to verify measurement: %v", err)
	}

	if got.Platform != want.Platform || !bytes.Equal(got.Root, want.Root) {
		klog.Exitf("Measurement mismatch, got %s %x, want %s %x", got.Platform, got.Root, want.Platform, want.Root)
	}

	fmt.Printf("%s measurement verified (%x)\n", got.Platform, got.Root)
}

func signerOrDie(p string) note.Signer {
	k, err := os.ReadFile(p)
	if err != nil {
		klog.Exitf("Failed to read signer key file %q: %v", p, err)
	}
	s, err := note.NewSigner(string(bytes.TrimSpace(k)))
	if err != nil {
		klog.Exitf("Invalid note signer key: %v", err)
	}
	return s
}

func verifierOrDie(p string) note.Verifier {
	vs, err := os.ReadFile(p)
	if err != nil {
		klog.Exitf("Failed to read verifier key file %q: %v", p, err)
	}
	v, err := note.NewVerifier(string(bytes.TrimSpace(vs)))
	if err != nil {
		klog.Exitf("Invalid note verifier string %q: %v", vs, err)
	}
	return v
}
