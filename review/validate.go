// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package review

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// Validate checks raw form input against a rubric.
//
// Empty input counts as 0. Every criterion is checked so the returned
// *ValidationError lists all problems, not just the first one. Keys that
// are not part of the rubric are ignored.
func Validate(raw map[string]string, criteria []rubric.Criterion) (models.Scores, error) {
	scores := make(models.Scores, len(criteria))
	var errs []error

	for _, c := range criteria {
		text := strings.TrimSpace(raw[c.Key])
		if text == "" {
			scores[c.Key] = 0
			continue
		}

		v, err := strconv.Atoi(text)
		if errors.Is(err, strconv.ErrRange) {
			errs = append(errs, &ScoreOutOfRangeError{Criterion: c.Key, Value: v, Max: c.MaxScore, Raw: text})
			continue
		}
		if err != nil {
			errs = append(errs, &ScoreNotIntegerError{Criterion: c.Key, Raw: raw[c.Key]})
			continue
		}
		if v < 0 || v > c.MaxScore {
			errs = append(errs, &ScoreOutOfRangeError{Criterion: c.Key, Value: v, Max: c.MaxScore})
			continue
		}
		scores[c.Key] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return scores, nil
}
