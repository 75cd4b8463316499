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

package rpc

import (
	"github.com/coreos/go-semver/semver"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// Transition represents an RPC request for a granule PAS transition.
type Transition struct {
	// Addr is the physical address of the granule.
	Addr uint64
	// Caller is the security state of the requesting software.
	Caller gpt.SecurityState
	// Target is the requested PAS.
	Target gpt.PAS
}

// Lookup represents an RPC granule PAS lookup result.
type Lookup struct {
	Addr uint64
	PAS  gpt.PAS
	// Region is the name of the platform region containing the granule,
	// if any.
	Region string
}

// Versions represents the interface version of the monitor and the build
// information of the running firmware.
type Versions struct {
	Interface semver.Version
	Revision  string
	Build     string
}
