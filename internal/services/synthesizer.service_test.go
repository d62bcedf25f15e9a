package services

import (
	"testing"
	"time"

	"betsmith/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameOn(day string, home string, homeScore int, away string, awayScore int) models.GameRecord {
	date, _ := time.Parse("2006-01-02", day)
	return models.GameRecord{
		League:    models.LeagueNBA,
		GameID:    home + "-" + away,
		StartDate: date,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Status:    "final",
	}
}

func TestSynthesizeEmptyGames(t *testing.T) {
	service := NewSynthesizerService()

	recommendations := service.Synthesize(models.LeagueNBA, nil, models.Preferences{})
	assert.Nil(t, recommendations)

	recommendations = service.Synthesize(models.LeagueNBA, []models.GameRecord{}, models.Preferences{})
	assert.Nil(t, recommendations)
}

func TestSynthesizeProducesOnePerTier(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-02", "Celtics", 110, "Lakers", 98),
		gameOn("2026-03-01", "Nuggets", 120, "Suns", 115),
	}

	recommendations := service.Synthesize(models.LeagueNBA, games, models.Preferences{Units: 2})
	require.Len(t, recommendations, 3)

	tiers := make(map[models.RiskTier]models.Recommendation, 3)
	for _, rec := range recommendations {
		tiers[rec.RiskTier] = rec
	}
	for _, tier := range models.AllRiskTiers() {
		assert.Contains(t, tiers, tier)
	}

	assert.Equal(t, models.BetTypeMoneyline, tiers[models.RiskTierSafe].BetType)
	assert.Equal(t, models.BetTypeOverUnder, tiers[models.RiskTierModerate].BetType)
	assert.Equal(t, models.BetTypeParlay, tiers[models.RiskTierHailMary].BetType)

	for _, rec := range recommendations {
		assert.Equal(t, models.LeagueNBA, rec.League)
		assert.GreaterOrEqual(t, rec.Confidence, 0)
		assert.LessOrEqual(t, rec.Confidence, 100)
		assert.NotEmpty(t, rec.Description)
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-02", "Oilers", 4, "Flames", 2),
		gameOn("2026-03-01", "Jets", 3, "Canucks", 3),
		gameOn("2026-02-28", "Leafs", 1, "Senators", 5),
	}
	prefs := models.Preferences{Units: 1}

	first := service.Synthesize(models.LeagueNHL, games, prefs)
	second := service.Synthesize(models.LeagueNHL, games, prefs)

	assert.Equal(t, first, second)
}

func TestSafePickTieGoesToHomeTeam(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-02", "Whitecaps", 2, "Union", 2),
	}

	recommendations := service.Synthesize(models.LeagueMLS, games, models.Preferences{})
	require.Len(t, recommendations, 3)

	safe := recommendations[0]
	assert.Equal(t, models.RiskTierSafe, safe.RiskTier)
	assert.Equal(t, "Whitecaps", safe.Subject)
	require.NotNil(t, safe.Opponent)
	assert.Equal(t, "Union", *safe.Opponent)
	// Margin is zero, so confidence sits at the floor
	assert.Equal(t, 75, safe.Confidence)
}

func TestSafePickConfidenceCapsAtBlowouts(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-02", "Chiefs", 45, "Panthers", 3),
	}

	recommendations := service.Synthesize(models.LeagueNFL, games, models.Preferences{})
	safe := recommendations[0]
	assert.Equal(t, 85, safe.Confidence)
}

func TestModeratePickUsesLeagueTotal(t *testing.T) {
	service := NewSynthesizerService()

	tests := []struct {
		league models.League
		total  string
	}{
		{models.LeagueNBA, "220.5"},
		{models.LeagueNFL, "48.5"},
		{models.LeagueNHL, "5.5"},
		{models.LeagueMLB, "8.5"},
		{models.LeagueCFL, "52.5"},
		{models.LeagueMLS, "2.5"},
	}

	games := []models.GameRecord{
		gameOn("2026-03-02", "Home A", 3, "Away A", 1),
		gameOn("2026-03-01", "Home B", 2, "Away B", 0),
	}

	for _, test := range tests {
		recommendations := service.Synthesize(test.league, games, models.Preferences{})
		moderate := recommendations[1]
		assert.Equal(t, models.RiskTierModerate, moderate.RiskTier)
		assert.Equal(t, "O "+test.total, moderate.Line, "league %s", test.league)
		// Anchored to the second game when one exists
		assert.Equal(t, "Away B @ Home B", moderate.Subject)
		assert.Nil(t, moderate.Opponent)
		assert.Equal(t, 65, moderate.Confidence)
	}
}

func TestHailMaryParlayLegsCycleBetTypes(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-05", "Bills", 31, "Jets", 10),
		gameOn("2026-03-04", "Eagles", 24, "Cowboys", 20),
		gameOn("2026-03-03", "Lions", 27, "Bears", 13),
		gameOn("2026-03-02", "Rams", 17, "Seahawks", 14),
		gameOn("2026-03-01", "Packers", 21, "Vikings", 28),
	}

	recommendations := service.Synthesize(models.LeagueNFL, games, models.Preferences{})
	parlay := recommendations[2]

	assert.Equal(t, models.RiskTierHailMary, parlay.RiskTier)
	assert.Equal(t, "3-leg NFL parlay", parlay.Subject)
	assert.Equal(t, "3 legs", parlay.Line)
	assert.Equal(t, "+450", parlay.Odds)
	assert.Equal(t, 45, parlay.Confidence)

	// Leg types cycle moneyline, total, spread
	assert.Contains(t, parlay.Description, "Leg 1: Bills ML vs Jets")
	assert.Contains(t, parlay.Description, "Leg 2: over 48.5 in Cowboys @ Eagles")
	assert.Contains(t, parlay.Description, "Leg 3: Lions spread -3.5")
	assert.NotContains(t, parlay.Description, "Leg 4")
}

func TestHailMarySingleGameParlay(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-02", "Avalanche", 5, "Wild", 1),
	}

	recommendations := service.Synthesize(models.LeagueNHL, games, models.Preferences{})
	parlay := recommendations[2]

	assert.Equal(t, "1-leg NHL parlay", parlay.Subject)
	assert.Equal(t, "+150", parlay.Odds)
	assert.Equal(t, 35, parlay.Confidence)
}

func TestHailMarySpreadLegUsesLeagueLabel(t *testing.T) {
	service := NewSynthesizerService()

	games := []models.GameRecord{
		gameOn("2026-03-03", "Yankees", 6, "Red Sox", 2),
		gameOn("2026-03-02", "Dodgers", 4, "Giants", 3),
		gameOn("2026-03-01", "Cubs", 5, "Cardinals", 1),
	}

	recommendations := service.Synthesize(models.LeagueMLB, games, models.Preferences{})
	parlay := recommendations[2]

	assert.Contains(t, parlay.Description, "Leg 3: Cubs runline -1.5")
}
