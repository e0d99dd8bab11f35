// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// Summarize computes per-project means over final votes.
//
// Means are rounded to two decimal places. Results are sorted by mean total,
// highest first, with ties broken by project name. Projects without votes
// never appear.
func Summarize(finals []models.VoteRecord) []models.ProjectSummary {
	type acc struct {
		stage  rubric.Stage
		count  int
		total  int
		scores map[string]int
	}

	groups := make(map[string]*acc)
	for _, v := range finals {
		a, ok := groups[v.ProjectName]
		if !ok {
			a = &acc{stage: v.Stage, scores: make(map[string]int)}
			groups[v.ProjectName] = a
		}
		a.count++
		a.total += v.Total
		for k, s := range v.Scores {
			a.scores[k] += s
		}
	}

	summaries := make([]models.ProjectSummary, 0, len(groups))
	for name, a := range groups {
		perCriterion := make(map[string]float64, len(a.scores))
		for k, sum := range a.scores {
			perCriterion[k] = round2(float64(sum) / float64(a.count))
		}
		summaries = append(summaries, models.ProjectSummary{
			ProjectName:      name,
			Stage:            a.stage,
			VoteCount:        a.count,
			MeanTotal:        round2(float64(a.total) / float64(a.count)),
			MeanPerCriterion: perCriterion,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MeanTotal != summaries[j].MeanTotal {
			return summaries[i].MeanTotal > summaries[j].MeanTotal
		}
		return summaries[i].ProjectName < summaries[j].ProjectName
	})
	return summaries
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CSVHeader is the column layout of exported vote sheets
var CSVHeader = []string{
	"Project Name", "Stage", "Expert",
	"Research", "Tech", "Deliverables", "Output", "Budget",
	"Total", "Time",
}

// WriteVotesCSV writes final votes as a spreadsheet-friendly CSV
func WriteVotesCSV(w io.Writer, votes []models.VoteRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, v := range votes {
		row := []string{v.ProjectName, string(v.Stage), v.ExpertName}
		for _, key := range rubric.Keys() {
			row = append(row, strconv.Itoa(v.Scores[key]))
		}
		row = append(row, strconv.Itoa(v.Total), v.Timestamp.Format(models.CSVTimeLayout))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
