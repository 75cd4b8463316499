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

package gpt

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestErrno(t *testing.T) {
	for _, test := range []struct {
		err  error
		want syscall.Errno
	}{
		{err: nil, want: 0},
		{err: ErrInvalidAddress, want: syscall.EINVAL},
		{err: ErrInvalidParameter, want: syscall.EINVAL},
		{err: ErrPermissionDenied, want: syscall.EPERM},
		{err: fmt.Errorf("delegate: %w", ErrPermissionDenied), want: syscall.EPERM},
		{err: configErrorf(ErrSelector, "test"), want: syscall.EINVAL},
		{err: configErrorf(ErrAlignment, "test"), want: syscall.EFAULT},
		{err: configErrorf(ErrMemory, "test"), want: syscall.ENOMEM},
		{err: configErrorf(ErrRegions, "test"), want: syscall.EINVAL},
		{err: errors.New("unknown"), want: syscall.EINVAL},
	} {
		if got := Errno(test.err); got != test.want {
			t.Errorf("Errno(%v) = %v, want %v", test.err, got, test.want)
		}
	}
}

func TestConfigErrorIs(t *testing.T) {
	err := fmt.Errorf("boot: %w", configErrorf(ErrMemory, "%d tables", 2))

	if !errors.Is(err, &ConfigError{Kind: ErrMemory}) {
		t.Errorf("%v does not match ErrMemory", err)
	}

	if errors.Is(err, &ConfigError{Kind: ErrRegions}) {
		t.Errorf("%v matches ErrRegions", err)
	}

	if got, want := err.Error(), "boot: gpt: insufficient table memory, 2 tables"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestParsePAS(t *testing.T) {
	for _, pas := range []PAS{NoAccess, Secure, NonSecure, Root, Realm, Any} {
		got, err := ParsePAS(pas.String())
		if err != nil {
			t.Fatalf("ParsePAS(%q): %v", pas, err)
		}
		if got != pas {
			t.Errorf("ParsePAS(%q) = %s", pas, got)
		}
	}

	if _, err := ParsePAS("Monitor"); err == nil {
		t.Error("ParsePAS succeeded for unknown PAS")
	}
}

func TestPASOf(t *testing.T) {
	for _, test := range []struct {
		v       uint64
		want    PAS
		wantErr error
	}{
		{v: 0x8, want: Secure},
		{v: 0xb, want: Realm},
		{v: 0xf, want: Any},
		{v: 0x10, wantErr: ErrInvalidParameter},
		{v: 0x108, wantErr: ErrInvalidParameter},
		{v: ^uint64(0) - 0xf + 0x9, wantErr: ErrInvalidParameter},
	} {
		t.Run(fmt.Sprintf("%#x", test.v), func(t *testing.T) {
			got, err := PASOf(test.v)

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Got error %v, want %v", err, test.wantErr)
			}

			if err == nil && got != test.want {
				t.Fatalf("Got %s, want %s", got, test.want)
			}
		})
	}
}
