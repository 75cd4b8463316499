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

	"github.com/coreos/go-semver/semver"
	"google.golang.org/protobuf/proto"
	"gvisor.dev/gvisor/pkg/sync"
	"k8s.io/klog/v2"

	"github.com/transparency-dev/armored-witness-gpt/api"
	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

// Control represents the control interface, serving serialized api.Request
// messages.
//
// The caller security state of transitions is taken from the request, the
// interface must therefore only be exposed to trusted host or debug clients.
// Calls from lower exception levels go through Handler, which takes it from
// the calling context.
type Control struct {
	sync.Mutex

	Monitor *Monitor
}

// HandleMessage serves a serialized api.Request returning a serialized
// api.Response.
func (ctl *Control) HandleMessage(buf []byte) []byte {
	if len(buf) > api.MaxMessageSize {
		return api.ErrorResponse(fmt.Errorf("message size %d exceeds %d", len(buf), api.MaxMessageSize))
	}

	req := &api.Request{}

	if err := proto.Unmarshal(buf, req); err != nil {
		return api.ErrorResponse(fmt.Errorf("invalid request, %v", err))
	}

	if len(req.Version) > 0 {
		v, err := semver.NewVersion(req.Version)

		if err != nil {
			return api.ErrorResponse(fmt.Errorf("invalid version %q, %v", req.Version, err))
		}

		if !api.Compatible(*v) {
			return api.ErrorResponse(api.ErrIncompatibleVersion)
		}
	}

	ctl.Lock()
	defer ctl.Unlock()

	g := ctl.Monitor.GPT
	addr := req.Addr
	caller := gpt.SecurityState(req.Caller)

	var err error

	switch req.Op {
	case api.Op_STATUS:
		return ctl.Status(nil)
	case api.Op_TRANSITION:
		var target gpt.PAS

		if target, err = gpt.PASOf(uint64(req.Target)); err == nil {
			err = g.Transition(addr, caller, target)
		}
	case api.Op_DELEGATE:
		err = g.Delegate(addr)
	case api.Op_UNDELEGATE:
		err = g.Undelegate(addr)
	case api.Op_LOOKUP:
		var pas gpt.PAS

		if pas, err = g.Lookup(addr); err == nil {
			return (&api.Response{PAS: uint32(pas)}).Bytes()
		}
	default:
		err = fmt.Errorf("unsupported operation %v", req.Op)
	}

	if err != nil {
		klog.V(1).Infof("SM control %v %#x: %v", req.Op, addr, err)
		return api.ErrorResponse(err)
	}

	return api.EmptyResponse()
}

// Status returns the serialized api.Status wrapped in an api.Response.
func (ctl *Control) Status(_ []byte) []byte {
	s, err := ctl.Monitor.Status()

	if err != nil {
		return api.ErrorResponse(err)
	}

	return (&api.Response{Payload: s.Bytes()}).Bytes()
}

// Client represents a control interface client.
type Client struct {
	// Send transmits a serialized request and returns the serialized
	// response.
	Send func(req []byte) ([]byte, error)
}

func (c *Client) call(req *api.Request) (*api.Response, error) {
	req.Version = api.Version.String()

	buf, err := c.Send(req.Bytes())

	if err != nil {
		return nil, err
	}

	res := &api.Response{}

	if err = proto.Unmarshal(buf, res); err != nil {
		return nil, err
	}

	return res, res.Error.Err(res.Payload)
}

// Transition requests a granule PAS transition.
func (c *Client) Transition(addr uint64, caller gpt.SecurityState, target gpt.PAS) error {
	_, err := c.call(&api.Request{
		Op:     api.Op_TRANSITION,
		Addr:   addr,
		Caller: uint32(caller),
		Target: uint32(target),
	})

	return err
}

// Lookup returns the PAS of a granule.
func (c *Client) Lookup(addr uint64) (gpt.PAS, error) {
	res, err := c.call(&api.Request{Op: api.Op_LOOKUP, Addr: addr})

	if err != nil {
		return gpt.NoAccess, err
	}

	return gpt.PAS(res.PAS), nil
}

// Status returns the monitor GPT status.
func (c *Client) Status() (*api.Status, error) {
	res, err := c.call(&api.Request{Op: api.Op_STATUS})

	if err != nil {
		return nil, err
	}

	if len(res.Payload) == 0 {
		return nil, errors.New("empty status")
	}

	s := &api.Status{}

	return s, proto.Unmarshal(res.Payload, s)
}
