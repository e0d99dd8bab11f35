// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

func vote(project, expert string, scores models.Scores) models.VoteRecord {
	return models.VoteRecord{
		ProjectName: project,
		Stage:       rubric.StageFinal,
		ExpertName:  expert,
		Scores:      scores,
		Total:       scores.Total(),
		Timestamp:   time.Date(2025, 6, 1, 14, 5, 59, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	Convey("Given final votes of 80 and 90 on one project", t, func() {
		finals := []models.VoteRecord{
			vote("ProjA", "Expert1", models.Scores{"research": 20, "tech": 30, "deliverables": 20, "output": 10}),
			vote("ProjA", "Expert2", models.Scores{"research": 20, "tech": 30, "deliverables": 20, "output": 20}),
		}

		Convey("When summarizing", func() {
			summaries := Summarize(finals)

			Convey("Then the mean total is 85", func() {
				So(summaries, ShouldHaveLength, 1)
				So(summaries[0].ProjectName, ShouldEqual, "ProjA")
				So(summaries[0].VoteCount, ShouldEqual, 2)
				So(summaries[0].MeanTotal, ShouldEqual, 85.0)
				So(summaries[0].MeanPerCriterion["output"], ShouldEqual, 15.0)
				So(summaries[0].Stage, ShouldEqual, rubric.StageFinal)
			})
		})
	})

	Convey("Given means that need rounding", t, func() {
		finals := []models.VoteRecord{
			vote("P", "A", models.Scores{"budget": 10}),
			vote("P", "B", models.Scores{"budget": 10}),
			vote("P", "C", models.Scores{"budget": 9}),
		}

		Convey("Then they are rounded to two decimals", func() {
			s := Summarize(finals)
			So(s[0].MeanTotal, ShouldEqual, 9.67)
			So(s[0].MeanPerCriterion["budget"], ShouldEqual, 9.67)
		})
	})

	Convey("Given several projects", t, func() {
		finals := []models.VoteRecord{
			vote("Low", "A", models.Scores{"research": 5}),
			vote("Tie-b", "A", models.Scores{"research": 15}),
			vote("Tie-a", "A", models.Scores{"research": 15}),
			vote("High", "A", models.Scores{"research": 20}),
		}

		Convey("Then they are ordered by mean total, then name", func() {
			s := Summarize(finals)
			names := make([]string, len(s))
			for i, p := range s {
				names[i] = p.ProjectName
			}
			So(names, ShouldResemble, []string{"High", "Tie-a", "Tie-b", "Low"})
		})
	})

	Convey("Given no votes", t, func() {
		So(Summarize(nil), ShouldBeEmpty)
	})
}

func TestWriteVotesCSV(t *testing.T) {
	Convey("Given a final vote", t, func() {
		votes := []models.VoteRecord{
			vote("Alpha, Phase 2", "Zhang", models.Scores{"research": 18, "tech": 27, "deliverables": 17, "output": 18, "budget": 9}),
		}

		Convey("When writing CSV", func() {
			var buf bytes.Buffer
			err := WriteVotesCSV(&buf, votes)

			Convey("Then the header and row are written in rubric order", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, 2)
				So(lines[0], ShouldEqual, "Project Name,Stage,Expert,Research,Tech,Deliverables,Output,Budget,Total,Time")
				So(lines[1], ShouldEqual, `"Alpha, Phase 2",final,Zhang,18,27,17,18,9,89,2025-06-01 14:05`)
			})
		})

		Convey("When there are no votes", func() {
			var buf bytes.Buffer
			So(WriteVotesCSV(&buf, nil), ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldEqual, strings.Join(CSVHeader, ","))
		})

		Convey("When the writer fails", func() {
			err := WriteVotesCSV(failingWriter{}, votes)
			So(err, ShouldNotBeNil)
		})
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
