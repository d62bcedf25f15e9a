package services

import (
	"fmt"
	"strings"

	"betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// SynthesizerService derives exactly one recommendation per risk tier from
// an ordered list of games. It is a pure function of its inputs: no clock,
// no randomness, so repeated runs against unchanged input are
// byte-identical.
type SynthesizerService struct {
	log logger.Logger
}

func NewSynthesizerService() *SynthesizerService {
	return &SynthesizerService{
		log: logger.New("synthesizerService"),
	}
}

// Synthesize produces the safe, moderate, and hail-mary recommendations for
// one league. Games must be ordered most-recent-first. An empty list yields
// an empty result; the caller skips storing rather than erroring.
func (s *SynthesizerService) Synthesize(
	league models.League,
	games []models.GameRecord,
	prefs models.Preferences,
) []models.Recommendation {
	if len(games) == 0 {
		return nil
	}

	return []models.Recommendation{
		s.safePick(league, games[0], prefs),
		s.moderatePick(league, games, prefs),
		s.hailMaryPick(league, games, prefs),
	}
}

// safePick backs the favorite of the most recent game on the moneyline.
// Equal scores resolve to the home side, keeping the comparison total.
func (s *SynthesizerService) safePick(
	league models.League,
	game models.GameRecord,
	prefs models.Preferences,
) models.Recommendation {
	favorite, opponent := game.Favorite()

	margin := game.ScoreMargin()
	if margin > 10 {
		margin = 10
	}

	return models.Recommendation{
		League:      league,
		RiskTier:    models.RiskTierSafe,
		BetType:     models.BetTypeMoneyline,
		Subject:     favorite,
		Opponent:    &opponent,
		Line:        "ML",
		Odds:        "-150",
		Confidence:  75 + margin,
		MatchDate:   game.StartDate,
		Description: fmt.Sprintf("%s moneyline: %s over %s", league, favorite, opponent),
		Reasoning: fmt.Sprintf(
			"%s holds the stronger side of %s. Straight win, %du stake.",
			favorite, game.Matchup(), prefs.StakeUnits(),
		),
	}
}

// moderatePick takes the over on the league's fixed total, anchored to the
// second game when one exists.
func (s *SynthesizerService) moderatePick(
	league models.League,
	games []models.GameRecord,
	prefs models.Preferences,
) models.Recommendation {
	game := games[0]
	if len(games) > 1 {
		game = games[1]
	}

	total := league.Total()

	return models.Recommendation{
		League:      league,
		RiskTier:    models.RiskTierModerate,
		BetType:     models.BetTypeOverUnder,
		Subject:     game.Matchup(),
		Opponent:    nil,
		Line:        fmt.Sprintf("O %s", total),
		Odds:        "-110",
		Confidence:  65,
		MatchDate:   game.StartDate,
		Description: fmt.Sprintf("%s total: over %s in %s", league, total, game.Matchup()),
		Reasoning: fmt.Sprintf(
			"Both sides have been finding the scoreboard; the %s number is beatable. %du stake.",
			total, prefs.StakeUnits(),
		),
	}
}

var parlayOdds = map[int]string{1: "+150", 2: "+280", 3: "+450"}

// hailMaryPick builds a parlay over up to three games. Leg bet types cycle
// moneyline, over/under, spread by leg index.
func (s *SynthesizerService) hailMaryPick(
	league models.League,
	games []models.GameRecord,
	prefs models.Preferences,
) models.Recommendation {
	legs := len(games)
	if legs > 3 {
		legs = 3
	}

	descriptions := make([]string, 0, legs)
	reasons := make([]string, 0, legs)

	for i, game := range games[:legs] {
		favorite, opponent := game.Favorite()

		switch i % 3 {
		case 0:
			descriptions = append(descriptions,
				fmt.Sprintf("Leg %d: %s ML vs %s", i+1, favorite, opponent))
			reasons = append(reasons,
				fmt.Sprintf("Leg %d: %s wins outright.", i+1, favorite))
		case 1:
			total := league.Total()
			descriptions = append(descriptions,
				fmt.Sprintf("Leg %d: over %s in %s", i+1, total, game.Matchup()))
			reasons = append(reasons,
				fmt.Sprintf("Leg %d: combined score clears %s.", i+1, total))
		case 2:
			spread := league.SpreadMagnitude()
			descriptions = append(descriptions,
				fmt.Sprintf("Leg %d: %s %s -%s", i+1, favorite, league.SpreadLabel(), spread))
			reasons = append(reasons,
				fmt.Sprintf("Leg %d: %s covers the %s-point %s.", i+1, favorite, spread, league.SpreadLabel()))
		}
	}

	return models.Recommendation{
		League:      league,
		RiskTier:    models.RiskTierHailMary,
		BetType:     models.BetTypeParlay,
		Subject:     fmt.Sprintf("%d-leg %s parlay", legs, league),
		Opponent:    nil,
		Line:        fmt.Sprintf("%d legs", legs),
		Odds:        parlayOdds[legs],
		Confidence:  35 + 5*(legs-1),
		MatchDate:   games[0].StartDate,
		Description: strings.Join(descriptions, "\n"),
		Reasoning: fmt.Sprintf(
			"Long shot, small stake. %du max.\n%s",
			prefs.StakeUnits(), strings.Join(reasons, "\n"),
		),
	}
}
