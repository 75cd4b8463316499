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

package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/sumdb/note"
)

// MeasurementHeader is the first line of measurement notes.
const MeasurementHeader = "armored-witness-gpt measurement"

// Measurement represents the table measurement of a platform.
type Measurement struct {
	// Platform is the name of the measured platform layout.
	Platform string
	// Version is the monitor interface version.
	Version string
	// Root is the Merkle tree root of the tables.
	Root []byte
}

// Text returns the note text representation of a measurement.
func (m Measurement) Text() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\n",
		MeasurementHeader, m.Platform, m.Version, base64.StdEncoding.EncodeToString(m.Root))
}

// ParseMeasurement parses the note text representation of a measurement.
func ParseMeasurement(text string) (m Measurement, err error) {
	lines := strings.Split(text, "\n")

	if len(lines) != 5 || lines[4] != "" {
		return m, errors.New("malformed measurement")
	}

	if lines[0] != MeasurementHeader {
		return m, fmt.Errorf("invalid measurement header %q", lines[0])
	}

	if m.Root, err = base64.StdEncoding.DecodeString(lines[3]); err != nil {
		return m, fmt.Errorf("invalid measurement root, %v", err)
	}

	m.Platform = lines[1]
	m.Version = lines[2]

	return
}

// Sign returns a signed note holding the measurement.
func (m Measurement) Sign(signers ...note.Signer) ([]byte, error) {
	return note.Sign(&note.Note{Text: m.Text()}, signers...)
}

// OpenMeasurement verifies a signed measurement note.
func OpenMeasurement(b []byte, verifiers ...note.Verifier) (Measurement, error) {
	n, err := note.Open(b, note.VerifierList(verifiers...))

	if err != nil {
		return Measurement{}, err
	}

	return ParseMeasurement(n.Text)
}
