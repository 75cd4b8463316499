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

// Package api defines the secure monitor interface for granule protection
// services, both the register based call ABI and the control interface
// messages.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"syscall"

	"github.com/coreos/go-semver/semver"
	"google.golang.org/protobuf/proto"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

//go:generate protoc --go_out=. --go_opt=paths=source_relative api.proto

// Secure monitor call function identifiers, the function identifier is
// passed in x0 and arguments in x1-x2.
const (
	// Returns the interface version (x0 = major<<16 | minor).
	FID_GPT_VERSION = 0xc200_0100
	// PAS transition of the granule at x1 to the PAS in x2.
	FID_GPT_TRANSITION = 0xc200_0101
	// Returns the PAS of the granule at x1 in x0.
	FID_GPT_LOOKUP = 0xc200_0102

	// Realm Management Monitor delegation of the granule at x1
	// (Non-secure to Realm).
	FID_GTSI_DELEGATE = 0xc400_01b0
	// Realm Management Monitor undelegation of the granule at x1 (Realm to
	// Non-secure).
	FID_GTSI_UNDELEGATE = 0xc400_01b1
)

// MaxMessageSize is the maximum control interface message size.
const MaxMessageSize = 4096

// Version is the interface version implemented by the monitor, clients with
// a different major version are refused.
var Version = *semver.New("1.0.0")

// Compatible reports whether a client interface version can be served.
func Compatible(client semver.Version) bool {
	return client.Major == Version.Major && !Version.LessThan(client)
}

// EncodeVersion returns the register encoding of a version.
func EncodeVersion(v semver.Version) uint64 {
	return uint64(v.Major)<<16 | uint64(v.Minor)&0xffff
}

// DecodeVersion returns the version encoded in a register.
func DecodeVersion(x0 uint64) semver.Version {
	return semver.Version{
		Major: int64(x0>>16) & 0x7fff,
		Minor: int64(x0 & 0xffff),
	}
}

// Result returns the x0 value for a call result, errors are returned as
// negative errno values.
func Result(err error) uint64 {
	if err == nil {
		return 0
	}

	return uint64(-int64(gpt.Errno(err)))
}

// Error returns the error encoded in an x0 call result, if any.
func Error(x0 uint64) error {
	if v := int64(x0); v < 0 {
		return syscall.Errno(-v)
	}

	return nil
}

// ErrIncompatibleVersion is returned to clients using an unsupported
// interface version.
var ErrIncompatibleVersion = errors.New("incompatible interface version")

// Code returns the control interface error code of an error.
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrorCode_NONE
	case errors.Is(err, gpt.ErrInvalidAddress):
		return ErrorCode_INVALID_ADDRESS
	case errors.Is(err, gpt.ErrInvalidParameter):
		return ErrorCode_INVALID_PARAMETER
	case errors.Is(err, gpt.ErrPermissionDenied):
		return ErrorCode_PERMISSION_DENIED
	case errors.Is(err, ErrIncompatibleVersion):
		return ErrorCode_INCOMPATIBLE_VERSION
	}

	return ErrorCode_GENERIC_ERROR
}

// Err returns the error matching a control interface error code.
func (c ErrorCode) Err(msg []byte) error {
	switch c {
	case ErrorCode_NONE:
		return nil
	case ErrorCode_INVALID_ADDRESS:
		return gpt.ErrInvalidAddress
	case ErrorCode_INVALID_PARAMETER:
		return gpt.ErrInvalidParameter
	case ErrorCode_PERMISSION_DENIED:
		return gpt.ErrPermissionDenied
	case ErrorCode_INCOMPATIBLE_VERSION:
		return ErrIncompatibleVersion
	}

	return fmt.Errorf("%v: %s", c, msg)
}

var emptyResponse []byte

// ErrorResponse converts an error in an API Message.
func ErrorResponse(err error) (res []byte) {
	msg := &Response{
		Error:   Code(err),
		Payload: []byte(err.Error()),
	}

	res, _ = proto.Marshal(msg)

	return
}

// EmptyResponse for when no relevant data is available.
func EmptyResponse() []byte {
	if len(emptyResponse) == 0 {
		emptyResponse, _ = proto.Marshal(&Response{})
	}

	return emptyResponse
}

// Bytes serializes an API message.
func (p *Request) Bytes() (buf []byte) {
	buf, _ = proto.Marshal(p)
	return
}

// Bytes serializes an API message.
func (p *Response) Bytes() (buf []byte) {
	buf, _ = proto.Marshal(p)
	return
}

// Bytes serializes an API message.
func (p *Status) Bytes() (buf []byte) {
	buf, _ = proto.Marshal(p)
	return
}

// Print returns the monitor GPT status in textual format.
func (p *Status) Print() string {
	var status bytes.Buffer

	status.WriteString("------------------------------------------------------------- GPT ----\n")
	status.WriteString(fmt.Sprintf("Platform ...............: %s\n", p.Platform))
	status.WriteString(fmt.Sprintf("Interface ..............: %s\n", p.Version))
	status.WriteString(fmt.Sprintf("Runtime ................: %s\n", p.Runtime))
	status.WriteString(fmt.Sprintf("Geometry ...............: PPS:%s PGS:%s L0GPTSZ:%s\n", p.PPS, p.PGS, p.L0GPTSZ))
	status.WriteString(fmt.Sprintf("L0 table ...............: %#x\n", p.L0Base))
	status.WriteString(fmt.Sprintf("L1 tables ..............: %d at %#x\n", p.L1Tables, p.L1Base))
	status.WriteString(fmt.Sprintf("Enabled ................: %v\n", p.Enabled))
	status.WriteString(fmt.Sprintf("Measurement ............: %x", p.Measurement))

	for _, e := range p.Entries {
		status.WriteString("\n  " + e)
	}

	return status.String()
}
