// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package review

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Vingoooo/expert-scoring-system/rubric"
)

var (
	ErrDuplicateProject     = errors.New("project already exists")
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProject       = errors.New("invalid project")
	ErrInvalidExpert        = errors.New("expert name is required")
	ErrUnknownStage         = rubric.ErrUnknownStage
	ErrScoreOutOfRange      = errors.New("score out of range")
	ErrScoreNotInteger      = errors.New("score is not an integer")
	ErrValidationFailed     = errors.New("validation failed")
	ErrIncompleteSubmission = errors.New("not every project has been scored")
	ErrProjectLocked        = errors.New("project scores are locked")
)

// ScoreOutOfRangeError reports an integer outside [0, Max]. Raw is set when
// the input did not fit in an int, in which case Value is clamped.
type ScoreOutOfRangeError struct {
	Criterion string
	Value     int
	Max       int
	Raw       string
}

func (e *ScoreOutOfRangeError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("%s: %s is outside 0-%d", e.Criterion, e.Raw, e.Max)
	}
	return fmt.Sprintf("%s: %d is outside 0-%d", e.Criterion, e.Value, e.Max)
}

func (e *ScoreOutOfRangeError) Is(target error) bool { return target == ErrScoreOutOfRange }

// ScoreNotIntegerError reports non-empty input that is not a whole number
type ScoreNotIntegerError struct {
	Criterion string
	Raw       string
}

func (e *ScoreNotIntegerError) Error() string {
	return fmt.Sprintf("%s: %q is not an integer", e.Criterion, e.Raw)
}

func (e *ScoreNotIntegerError) Is(target error) bool { return target == ErrScoreNotInteger }

// ValidationError carries every problem found in a form, in rubric order.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

func (e *ValidationError) Unwrap() []error { return e.Errors }

// IncompleteSubmissionError lists registered projects without an effective vote
type IncompleteSubmissionError struct {
	Missing []string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteSubmission, strings.Join(e.Missing, ", "))
}

func (e *IncompleteSubmissionError) Is(target error) bool { return target == ErrIncompleteSubmission }

// Details flattens an error into user-facing lines
func Details(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		out := make([]string, len(ve.Errors))
		for i, e := range ve.Errors {
			out[i] = e.Error()
		}
		return out
	}
	var ie *IncompleteSubmissionError
	if errors.As(err, &ie) {
		return append([]string(nil), ie.Missing...)
	}
	return nil
}
