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
	"errors"
	"fmt"
	"io"
	netrpc "net/rpc"
	"net/rpc/jsonrpc"

	"github.com/coreos/go-semver/semver"
	"google.golang.org/protobuf/proto"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/api"
	"github.com/transparency-dev/armored-witness-gpt/api/rpc"
)

// RPC represents a receiver for RPC requests from lower exception levels.
type RPC struct {
	monitor *Monitor
}

// ServeRPC serves RPC requests on a connection until it is closed.
func (m *Monitor) ServeRPC(conn io.ReadWriteCloser) error {
	server := netrpc.NewServer()

	if err := server.Register(&RPC{monitor: m}); err != nil {
		return err
	}

	server.ServeCodec(jsonrpc.NewServerCodec(conn))

	return nil
}

// Version receives the client interface version for verification and
// returns the monitor one.
func (r *RPC) Version(version string, v *rpc.Versions) error {
	client, err := semver.NewVersion(version)

	if err != nil {
		return fmt.Errorf("invalid version %q, %v", version, err)
	}

	if !api.Compatible(*client) {
		klog.Warningf("SM refusing client interface version %s", client)
		return fmt.Errorf("%w (%s, monitor %s)", api.ErrIncompatibleVersion, client, api.Version)
	}

	if v != nil {
		v.Interface = api.Version
		v.Revision = r.monitor.Revision
		v.Build = r.monitor.Build
	}

	return nil
}

// Transition requests a granule PAS transition.
func (r *RPC) Transition(req rpc.Transition, _ *bool) error {
	return r.monitor.GPT.Transition(req.Addr, req.Caller, req.Target)
}

// Delegate moves a Non-secure granule to the Realm PAS.
func (r *RPC) Delegate(addr uint64, _ *bool) error {
	return r.monitor.GPT.Delegate(addr)
}

// Undelegate returns a Realm granule to the Non-secure PAS.
func (r *RPC) Undelegate(addr uint64, _ *bool) error {
	return r.monitor.GPT.Undelegate(addr)
}

// Lookup returns the PAS of a granule.
func (r *RPC) Lookup(addr uint64, res *rpc.Lookup) (err error) {
	if res == nil {
		return errors.New("invalid argument")
	}

	*res, err = r.monitor.Lookup(addr)

	return
}

// Status returns the monitor GPT status.
func (r *RPC) Status(_ any, status *api.Status) error {
	if status == nil {
		return errors.New("invalid argument")
	}

	s, err := r.monitor.Status()

	if err != nil {
		return err
	}

	proto.Reset(status)
	proto.Merge(status, s)

	return nil
}

// Measurement returns the table measurement.
func (r *RPC) Measurement(_ any, m *api.Measurement) (err error) {
	if m == nil {
		return errors.New("invalid argument")
	}

	*m, err = r.monitor.Measurement()

	return
}
