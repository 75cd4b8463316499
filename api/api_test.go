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
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/coreos/go-semver/semver"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/mod/sumdb/note"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/testing/protocmp"

	"github.com/transparency-dev/armored-witness-gpt/gpt"
)

func TestResult(t *testing.T) {
	for _, test := range []struct {
		err   error
		want  uint64
		errno syscall.Errno
	}{
		{err: nil, want: 0},
		{err: gpt.ErrInvalidAddress, want: ^uint64(0) - uint64(syscall.EINVAL) + 1, errno: syscall.EINVAL},
		{err: gpt.ErrPermissionDenied, want: ^uint64(0) - uint64(syscall.EPERM) + 1, errno: syscall.EPERM},
	} {
		got := Result(test.err)

		if got != test.want {
			t.Errorf("Result(%v) = %#x, want %#x", test.err, got, test.want)
		}

		err := Error(got)

		if test.errno == 0 {
			if err != nil {
				t.Errorf("Error(%#x) = %v, want nil", got, err)
			}
			continue
		}

		if !errors.Is(err, test.errno) {
			t.Errorf("Error(%#x) = %v, want %v", got, err, test.errno)
		}
	}

	if err := Error(uint64(gpt.Realm)); err != nil {
		t.Errorf("Got error %v for PAS result", err)
	}
}

func TestVersion(t *testing.T) {
	if got := DecodeVersion(EncodeVersion(Version)); !got.Equal(Version) {
		t.Fatalf("Got %s, want %s", got, Version)
	}

	if got, want := EncodeVersion(*semver.New("2.3.9")), uint64(0x2_0003); got != want {
		t.Fatalf("Got %#x, want %#x", got, want)
	}

	for _, test := range []struct {
		client string
		want   bool
	}{
		{client: Version.String(), want: true},
		{client: fmt.Sprintf("%d.0.0", Version.Major), want: true},
		{client: fmt.Sprintf("%d.%d.0", Version.Major, Version.Minor+1), want: false},
		{client: fmt.Sprintf("%d.0.0", Version.Major+1), want: false},
	} {
		if got := Compatible(*semver.New(test.client)); got != test.want {
			t.Errorf("Compatible(%s) = %t, want %t", test.client, got, test.want)
		}
	}
}

func TestErrorCodes(t *testing.T) {
	for _, err := range []error{
		gpt.ErrInvalidAddress,
		gpt.ErrInvalidParameter,
		gpt.ErrPermissionDenied,
		ErrIncompatibleVersion,
	} {
		if got := Code(err).Err(nil); !errors.Is(got, err) {
			t.Errorf("Got %v, want %v", got, err)
		}
	}

	res := &Response{}

	if err := proto.Unmarshal(ErrorResponse(errors.New("no tables")), res); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if err := res.Error.Err(res.Payload); err == nil || err.Error() != "GENERIC_ERROR: no tables" {
		t.Fatalf("Got %v", err)
	}

	if len(EmptyResponse()) != 0 {
		t.Fatalf("Got non empty encoding of empty response %x", EmptyResponse())
	}
}

func TestMessages(t *testing.T) {
	req := &Request{
		Version: "1.0.0",
		Op:      Op_TRANSITION,
		Addr:    0x4000_0000,
		Caller:  uint32(gpt.SecureState),
		Target:  uint32(gpt.NonSecure),
	}

	gotReq := &Request{}

	if err := proto.Unmarshal(req.Bytes(), gotReq); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(req, gotReq, protocmp.Transform()); diff != "" {
		t.Errorf("Got request diff (-want +got): %s", diff)
	}

	status := &Status{
		Platform:    "fvp",
		Version:     "1.0.0",
		PPS:         "4GB",
		L0Base:      0xffc0_0000,
		L1Tables:    2,
		Enabled:     true,
		Measurement: []byte{1, 2, 3},
		Entries:     []string{"L0[0]", "L0[1]"},
	}

	// unknown fields are skipped
	b := protowire.AppendTag(status.Bytes(), 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	gotStatus := &Status{}

	if err := proto.Unmarshal(b, gotStatus); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(status, gotStatus, protocmp.Transform(), protocmp.IgnoreUnknown()); diff != "" {
		t.Errorf("Got status diff (-want +got): %s", diff)
	}

	if err := proto.Unmarshal(b[:len(b)-4], gotStatus); err == nil {
		t.Error("Unmarshal succeeded for truncated message")
	}
}

func TestDescriptor(t *testing.T) {
	for _, test := range []struct {
		msg    string
		fields int
	}{
		{msg: "Request", fields: 5},
		{msg: "Response", fields: 3},
		{msg: "Status", fields: 12},
	} {
		md := File_api_proto.Messages().ByName(protoreflect.Name(test.msg))

		if md == nil {
			t.Fatalf("missing message %s", test.msg)
		}

		if got := md.Fields().Len(); got != test.fields {
			t.Errorf("%s: got %d fields, want %d", test.msg, got, test.fields)
		}
	}

	if got, want := Op_UNDELEGATE.String(), "UNDELEGATE"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	if got, want := ErrorCode_PERMISSION_DENIED.String(), "PERMISSION_DENIED"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestStatusPrint(t *testing.T) {
	s := &Status{
		Platform: "scenario",
		Enabled:  true,
		Entries:  []string{"L0[0] 0x0000000000 Block(NonSecure)"},
	}

	out := s.Print()

	for _, want := range []string{
		"Platform ...............: scenario\n",
		"Enabled ................: true\n",
		"\n  L0[0] 0x0000000000 Block(NonSecure)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Status missing %q:\n%s", want, out)
		}
	}
}

func TestMeasurement(t *testing.T) {
	skey, vkey, err := note.GenerateKey(rand.Reader, "gpt-test")
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	signer, err := note.NewSigner(skey)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	verifier, err := note.NewVerifier(vkey)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	m := Measurement{
		Platform: "fvp",
		Version:  Version.String(),
		Root:     []byte("0123456789abcdef0123456789abcdef"),
	}

	signed, err := m.Sign(signer)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := OpenMeasurement(signed, verifier)
	if err != nil {
		t.Fatalf("OpenMeasurement: %v", err)
	}

	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("Got measurement diff (-want +got): %s", diff)
	}

	_, other, _ := note.GenerateKey(rand.Reader, "other")
	otherVerifier, _ := note.NewVerifier(other)

	if _, err := OpenMeasurement(signed, otherVerifier); err == nil {
		t.Error("OpenMeasurement succeeded with unknown key")
	}

	for _, text := range []string{
		"",
		"armored-witness-gpt measurement\nfvp\n1.0.0\n",
		"other header\nfvp\n1.0.0\nAAAA\n",
		"armored-witness-gpt measurement\nfvp\n1.0.0\n!!!\n",
	} {
		if _, err := ParseMeasurement(text); err == nil {
			t.Errorf("ParseMeasurement(%q) succeeded", text)
		}
	}
}
