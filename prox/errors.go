// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import "errors"

var (
	// ErrUnknownOperator indicates a name that is not in the registry.
	ErrUnknownOperator = errors.New("prox: unknown operator name")
	// ErrInvalidIdentifier indicates an identifier that is neither a
	// registered name nor a proximal mapping.
	ErrInvalidIdentifier = errors.New("prox: identifier must be a registered name, an ApplyFunc or an Operator")
	// ErrInvalidConfig indicates construction arguments an operator cannot
	// be built from.
	ErrInvalidConfig = errors.New("prox: invalid operator configuration")
	// ErrNoBackend indicates an operator whose required backend was not
	// supplied. It is reported by the first Apply that needs the backend;
	// returning the input unchanged instead would hide the missing
	// capability from the caller.
	ErrNoBackend = errors.New("prox: denoising backend unavailable")
)
