// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"time"

	"github.com/danielhkuo/ballotchain/models"
)

const day = 24 * time.Hour

// SampleSnapshot returns the demo data set: two active elections ending 3 and
// 5 days after now, and one election that ended 30 days before now.
func SampleSnapshot(now time.Time) models.Snapshot {
	return models.Snapshot{
		Active: []models.Election{
			{
				ID:          "1",
				Title:       "City Council Election 2023",
				Description: "Vote for your local city council representative",
				EndTime:     now.Add(3 * day),
				Candidates: []models.Candidate{
					{ID: "1", Name: "Jane Smith", Party: "Progressive Party", Votes: 145},
					{ID: "2", Name: "John Doe", Party: "Conservative Party", Votes: 120},
					{ID: "3", Name: "Alex Johnson", Party: "Independent", Votes: 78},
				},
				TotalVotes:   343,
				Status:       models.StatusActive,
				Transactions: []models.Transaction{},
			},
			{
				ID:          "2",
				Title:       "School Board Election",
				Description: "Select members for the local school board",
				EndTime:     now.Add(5 * day),
				Candidates: []models.Candidate{
					{ID: "1", Name: "Robert Wilson", Party: "Education First", Votes: 89},
					{ID: "2", Name: "Maria Garcia", Party: "Future Leaders", Votes: 102},
					{ID: "3", Name: "David Chen", Party: "Community Voice", Votes: 67},
				},
				TotalVotes:   258,
				Status:       models.StatusActive,
				Transactions: []models.Transaction{},
			},
		},
		Past: []models.Election{
			{
				ID:          "5",
				Title:       "Mayor Election 2022",
				Description: "Election for the city mayor position",
				EndTime:     now.Add(-30 * day),
				Candidates: []models.Candidate{
					{ID: "1", Name: "Michael Brown", Party: "Progressive Party", Votes: 1245, Winner: true},
					{ID: "2", Name: "Sarah Miller", Party: "Conservative Party", Votes: 1120},
					{ID: "3", Name: "James Wilson", Party: "Independent", Votes: 578},
				},
				TotalVotes:   2943,
				Status:       models.StatusEnded,
				Transactions: []models.Transaction{},
			},
		},
		Voters:         map[string][]models.Voter{},
		VotedElections: map[string]bool{},
	}
}
