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
)

// ConfigKind classifies boot time configuration errors.
type ConfigKind int

const (
	// ErrSelector indicates an unsupported granule, PPS or L0GPTSZ selector.
	ErrSelector ConfigKind = iota + 1
	// ErrAlignment indicates misaligned table memory or regions.
	ErrAlignment
	// ErrMemory indicates insufficient L0 or L1 table memory.
	ErrMemory
	// ErrRegions indicates an empty, overlapping or out of range region
	// list.
	ErrRegions
)

func (k ConfigKind) String() string {
	switch k {
	case ErrSelector:
		return "unsupported selector"
	case ErrAlignment:
		return "misaligned memory"
	case ErrMemory:
		return "insufficient table memory"
	case ErrRegions:
		return "invalid regions"
	}

	return fmt.Sprintf("ConfigKind(%d)", int(k))
}

// ConfigError is returned by Init, it is never recoverable as a misconfigured
// protection boundary must halt the boot.
type ConfigError struct {
	Kind ConfigKind
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gpt: %s, %s", e.Kind, e.Msg)
}

// Is matches errors of the same kind, allowing errors.Is(err,
// &ConfigError{Kind: ErrMemory}).
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Kind == e.Kind
}

func configErrorf(kind ConfigKind, format string, a ...any) error {
	return &ConfigError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, a...),
	}
}

// TransitionError is returned to the caller of an illegal PAS transition.
type TransitionError int

const (
	// InvalidAddress is returned for addresses outside the protected
	// space or not aligned to the granule size.
	InvalidAddress TransitionError = iota + 1
	// InvalidParameter is returned for caller/target combinations
	// forbidden by the transition policy.
	InvalidParameter
	// PermissionDenied is returned for block mapped granules or granules
	// whose current PAS cannot be changed by the caller.
	PermissionDenied
)

var (
	ErrInvalidAddress   error = InvalidAddress
	ErrInvalidParameter error = InvalidParameter
	ErrPermissionDenied error = PermissionDenied
)

func (e TransitionError) Error() string {
	switch e {
	case InvalidAddress:
		return "gpt: invalid address"
	case InvalidParameter:
		return "gpt: invalid parameter"
	case PermissionDenied:
		return "gpt: permission denied"
	}

	return fmt.Sprintf("gpt: transition error %d", int(e))
}

// Errno maps errors returned by this package to the errno values returned
// across the monitor call boundary, a nil error maps to 0.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}

	var te TransitionError

	if errors.As(err, &te) {
		switch te {
		case InvalidAddress, InvalidParameter:
			return syscall.EINVAL
		case PermissionDenied:
			return syscall.EPERM
		}
	}

	var ce *ConfigError

	if errors.As(err, &ce) {
		switch ce.Kind {
		case ErrAlignment:
			return syscall.EFAULT
		case ErrMemory:
			return syscall.ENOMEM
		}
	}

	return syscall.EINVAL
}
