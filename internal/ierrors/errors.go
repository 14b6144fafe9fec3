// Copyright 2025 Google LLC
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

// Package ierrors centralizes error construction for the dispatch and
// inliner packages so call sites read ierrors.Semantic("...") rather than
// reaching for fmt.Errorf or errors.New directly.
package ierrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// SemanticError reports that an operation was asked to do something the
// type system or shape rules forbid: an invalid cast, a shape mismatch, a
// mod between mismatched signedness, and so on. Dispatch never recovers
// from one; it is returned straight to the caller.
type SemanticError struct {
	msg   string
	cause error
}

// Semantic builds a SemanticError from a format string.
func Semantic(format string, args ...interface{}) error {
	return &SemanticError{msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a SemanticError message to an existing error, preserving
// it as the cause so errors.Is/errors.As/errors.Cause still see through it.
func Wrap(cause error, format string, args ...interface{}) error {
	return &SemanticError{msg: fmt.Sprintf(format, args...), cause: errors.WithStack(cause)}
}

func (e *SemanticError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause)
	}
	return e.msg
}

func (e *SemanticError) Unwrap() error { return e.cause }

// Cause implements the github.com/pkg/errors causer interface.
func (e *SemanticError) Cause() error { return e.cause }

// UnreachableError reports that control reached a branch that every
// invariant upstream claims is impossible. Seeing one means either an
// invariant was violated earlier, or a new case was added to the data
// model without a matching dispatch arm.
type UnreachableError struct {
	where string
}

// Unreachable builds an UnreachableError naming the function or switch
// arm that observed the impossible state.
func Unreachable(where string) error {
	return errors.WithStack(&UnreachableError{where: where})
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unreachable: %s", e.where)
}

// IsSemantic reports whether err is (or wraps) a SemanticError.
func IsSemantic(err error) bool {
	var se *SemanticError
	return errors.As(err, &se)
}
