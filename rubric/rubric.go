// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rubric

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is the review phase a project is in
type Stage string

const (
	StageInterim Stage = "interim"
	StageFinal   Stage = "final"
)

// Criterion keys, in rubric order
const (
	KeyResearch     = "research"
	KeyTech         = "tech"
	KeyDeliverables = "deliverables"
	KeyOutput       = "output"
	KeyBudget       = "budget"
)

var ErrUnknownStage = errors.New("unknown stage")

// Criterion is a single scoring line of a rubric
type Criterion struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	MaxScore    int    `json:"max_score"`
	Guidance    string `json:"guidance"`
}

var keys = []string{KeyResearch, KeyTech, KeyDeliverables, KeyOutput, KeyBudget}

// Guidance bands are identical across stages; only the requirement text differs.
var catalog = map[Stage][]Criterion{
	StageInterim: {
		{KeyResearch, "Research objectives", "Staged research content defined in the application is progressing as planned", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyTech, "Technical indicators", "Main technical indicators reach the mid-term milestone requirements", 30, "meets 24-30; mostly meets 18-23; does not meet <18"},
		{KeyDeliverables, "Deliverables", "Deliverables produced so far can support completing the remaining research", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyOutput, "Outputs", "Staged technical breakthroughs, preliminary theory or methods, experiment platforms or simulation models", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyBudget, "Budget", "Funds are used reasonably and compliantly; execution rate matches progress", 10, "meets 8-10; mostly meets 5-7; does not meet <5"},
	},
	StageFinal: {
		{KeyResearch, "Research objectives", "All research content defined in the application has been achieved", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyTech, "Technical indicators", "All main technical indicators have been completed", 30, "meets 24-30; mostly meets 18-23; does not meet <18"},
		{KeyDeliverables, "Deliverables", "All deliverables are complete and of high quality", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyOutput, "Outputs", "Key technologies mastered; results protected by intellectual property or publications", 20, "meets 16-20; mostly meets 12-15; does not meet <12"},
		{KeyBudget, "Budget", "Funds are used reasonably and compliantly with a high execution rate", 10, "meets 8-10; mostly meets 5-7; does not meet <5"},
	},
}

// Criteria returns the ordered criteria for a stage.
// The returned slice is a copy and may be modified by the caller.
func Criteria(stage Stage) ([]Criterion, error) {
	c, ok := catalog[stage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, string(stage))
	}
	out := make([]Criterion, len(c))
	copy(out, c)
	return out, nil
}

// Keys returns the criterion keys in rubric order
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// ParseStage accepts the canonical stage names as well as the Chinese labels
// used on paper review forms (中期 / 结题).
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StageInterim), "中期":
		return StageInterim, nil
	case string(StageFinal), "结题":
		return StageFinal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// Valid reports whether the stage has a rubric
func (s Stage) Valid() bool {
	_, ok := catalog[s]
	return ok
}
