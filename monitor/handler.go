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

package monitor

import (
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/api"
	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// SMC_UNKNOWN is returned in x0 for unsupported function identifiers.
const SMC_UNKNOWN = ^uint64(0)

// ExecCtx represents the register state of a monitor call.
type ExecCtx struct {
	// X holds general purpose registers x0-x7.
	X [8]uint64

	// State is the security state of the calling software.
	State gpt.SecurityState
	// CPU is the index of the calling core.
	CPU int
}

// A0 returns the x0 register value (function identifier).
func (ctx *ExecCtx) A0() uint64 {
	return ctx.X[0]
}

// A1 returns the x1 register value.
func (ctx *ExecCtx) A1() uint64 {
	return ctx.X[1]
}

// A2 returns the x2 register value.
func (ctx *ExecCtx) A2() uint64 {
	return ctx.X[2]
}

// Ret sets the x0 return value.
func (ctx *ExecCtx) Ret(val uint64) {
	ctx.X[0] = val
}

// The monitor call handler is responsible for the following tasks:
//   - report the interface version
//   - serve PAS transitions for Secure and Realm callers
//   - serve granule delegation for the Realm Management Monitor
//   - serve PAS lookups
//
// Errors are returned to the caller as negative errno values in x0.
func (m *Monitor) Handler(ctx *ExecCtx) {
	switch ctx.A0() {
	case api.FID_GPT_VERSION:
		ctx.Ret(api.EncodeVersion(api.Version))
	case api.FID_GPT_TRANSITION:
		target, err := gpt.PASOf(ctx.A2())

		if err == nil {
			err = m.GPT.Transition(ctx.A1(), ctx.State, target)
		}

		ctx.Ret(api.Result(err))
	case api.FID_GTSI_DELEGATE, api.FID_GTSI_UNDELEGATE:
		if ctx.State != gpt.RealmState {
			klog.Warningf("SM GTSI call %#x from %s world", ctx.A0(), ctx.State)
			ctx.Ret(SMC_UNKNOWN)
			return
		}

		var err error

		if ctx.A0() == api.FID_GTSI_DELEGATE {
			err = m.GPT.Delegate(ctx.A1())
		} else {
			err = m.GPT.Undelegate(ctx.A1())
		}

		ctx.Ret(api.Result(err))
	case api.FID_GPT_LOOKUP:
		pas, err := m.GPT.Lookup(ctx.A1())

		if err != nil {
			ctx.Ret(api.Result(err))
			return
		}

		ctx.Ret(uint64(pas))
	default:
		klog.Warningf("SM unhandled monitor call %#x from %s world (core %d)", ctx.A0(), ctx.State, ctx.CPU)
		ctx.Ret(SMC_UNKNOWN)
	}
}
