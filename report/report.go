// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/ballotchain/models"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
)

type TallyReport struct {
	Election models.Election
}

func NewTallyReport(e models.Election) *TallyReport {
	return &TallyReport{Election: e}
}

// Shares returns each candidate's fraction of the votes cast, in candidate
// order. All shares are 0 when nobody has voted.
func (tr *TallyReport) Shares() []float64 {
	votes := make([]float64, len(tr.Election.Candidates))
	for i, c := range tr.Election.Candidates {
		votes[i] = float64(c.Votes)
	}

	total := floats.Sum(votes)
	if total == 0 {
		return make([]float64, len(votes))
	}
	for i := range votes {
		votes[i] /= total
	}
	return votes
}

// Leader returns the index of the candidate with the most votes, or -1 when
// there are no candidates. Ties go to the earlier candidate.
func (tr *TallyReport) Leader() int {
	if len(tr.Election.Candidates) == 0 {
		return -1
	}
	return floats.MaxIdx(tr.Shares())
}

// Tally builds the JSON view of the report
func (tr *TallyReport) Tally() models.TallyResponse {
	shares := tr.Shares()
	out := models.TallyResponse{
		ElectionID: tr.Election.ID,
		Status:     tr.Election.Status,
		TotalVotes: tr.Election.TotalVotes,
		Candidates: make([]models.CandidateShare, len(tr.Election.Candidates)),
	}
	for i, c := range tr.Election.Candidates {
		out.Candidates[i] = models.CandidateShare{
			CandidateID: c.ID,
			Name:        c.Name,
			Party:       c.Party,
			Votes:       c.Votes,
			Share:       shares[i],
			Winner:      c.Winner,
		}
	}
	return out
}

// PrintTallyTable writes one row per candidate as a Markdown table
func (tr *TallyReport) PrintTallyTable(writer io.Writer) {
	e := tr.Election
	shares := tr.Shares()

	fmt.Fprintf(writer, "%s (%s, %s votes)\n\n", e.Title, e.Status, humanize.Comma(int64(e.TotalVotes)))

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"ID", "Candidate", "Party", "Votes", "Share", "Winner"})

	// Configure for Markdown table formatting
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for i, c := range e.Candidates {
		var winner string
		if c.Winner {
			winner = "yes"
		}
		table.Append([]string{
			c.ID,
			c.Name,
			c.Party,
			humanize.Comma(int64(c.Votes)),
			fmt.Sprintf("%.1f%%", shares[i]*100),
			winner,
		})
	}

	table.Render()
}

// PrintElectionsTable writes a summary row per election
func PrintElectionsTable(writer io.Writer, elections []models.Election) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"ID", "Title", "Status", "Votes", "Leader", "Ends"})

	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, e := range elections {
		tr := NewTallyReport(e)
		var leader string
		if i := tr.Leader(); i >= 0 && e.TotalVotes > 0 {
			leader = e.Candidates[i].Name
		}
		var ends string
		if !e.EndTime.IsZero() {
			ends = humanize.Time(e.EndTime)
		}
		table.Append([]string{
			e.ID,
			strings.TrimSpace(e.Title),
			e.Status,
			humanize.Comma(int64(e.TotalVotes)),
			leader,
			ends,
		})
	}

	table.Render()
}
