package models

import (
	"fmt"
	"time"
)

// GameRecord is the uniform shape every upstream payload is normalized into.
// It is rebuilt from the upstream on every synthesis run and never persisted.
type GameRecord struct {
	League    League    `json:"league"`
	GameID    string    `json:"gameId"`
	StartDate time.Time `json:"startDate"`
	StartTime string    `json:"startTime,omitempty"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	Status    string    `json:"status"`
}

// Favorite returns the favored side and its opponent. The comparison is
// total: equal scores resolve to the home team.
func (g GameRecord) Favorite() (favorite, opponent string) {
	if g.AwayScore > g.HomeScore {
		return g.AwayTeam, g.HomeTeam
	}
	return g.HomeTeam, g.AwayTeam
}

// ScoreMargin returns the absolute score difference.
func (g GameRecord) ScoreMargin() int {
	margin := g.HomeScore - g.AwayScore
	if margin < 0 {
		return -margin
	}
	return margin
}

func (g GameRecord) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}
