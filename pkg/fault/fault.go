// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package fault defines the error taxonomy shared by the pattern compilers,
// emitters and amplification controller.  All failures in these layers are
// programming or parameter errors, reported synchronously and never retried.
package fault

import (
	"github.com/pkg/errors"
)

// ErrInvalidParameter signals a degenerate or inconsistent parameter, such as
// a weight of zero, a solution space of size one, or registers whose sizes do
// not match a compiled pattern.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInsufficientResource signals that fewer scratch (ancilla) qubits were
// supplied than a gate decomposition requires.
var ErrInsufficientResource = errors.New("insufficient resource")

// InvalidParameter constructs an ErrInvalidParameter with a formatted message.
func InvalidParameter(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

// InsufficientResource constructs an ErrInsufficientResource with a formatted
// message.
func InsufficientResource(format string, args ...any) error {
	return errors.Wrapf(ErrInsufficientResource, format, args...)
}
