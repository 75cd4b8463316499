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

package platform

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var units = []struct {
	suffix string
	shift  uint
}{
	{"PB", 50},
	{"TB", 40},
	{"GB", 30},
	{"MB", 20},
	{"KB", 10},
}

// ParseSize parses decimal, hexadecimal (0x prefixed) or binary unit suffixed
// ("4KB", "1GB") values.
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)

	for _, u := range units {
		n, ok := strings.CutSuffix(s, u.suffix)

		if !ok {
			continue
		}

		v, err := strconv.ParseUint(strings.TrimSpace(n), 0, 64)

		if err != nil {
			return 0, fmt.Errorf("invalid size %q, %v", s, err)
		}

		if v > (^uint64(0))>>u.shift {
			return 0, fmt.Errorf("invalid size %q, overflow", s)
		}

		return v << u.shift, nil
	}

	v, err := strconv.ParseUint(s, 0, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid size %q, %v", s, err)
	}

	return v, nil
}

// FormatSize returns the largest unit representation of v, falling back to
// hexadecimal.
func FormatSize(v uint64) string {
	if v == 0 {
		return "0"
	}

	for _, u := range units {
		if v&(1<<u.shift-1) == 0 {
			return fmt.Sprintf("%d%s", v>>u.shift, u.suffix)
		}
	}

	return fmt.Sprintf("%#x", v)
}

func unmarshalScalar(value *yaml.Node) (uint64, error) {
	if value.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("line %d: expected scalar value", value.Line)
	}

	v, err := ParseSize(value.Value)

	if err != nil {
		return 0, fmt.Errorf("line %d: %v", value.Line, err)
	}

	return v, nil
}

// Size represents a YAML size, encoded with units where possible.
type Size uint64

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	v, err := unmarshalScalar(value)
	*s = Size(v)
	return err
}

func (s Size) MarshalYAML() (any, error) {
	return FormatSize(uint64(s)), nil
}

// Addr represents a YAML physical address, encoded in hexadecimal.
type Addr uint64

func (a *Addr) UnmarshalYAML(value *yaml.Node) error {
	v, err := unmarshalScalar(value)
	*a = Addr(v)
	return err
}

func (a Addr) MarshalYAML() (any, error) {
	return fmt.Sprintf("%#x", uint64(a)), nil
}
