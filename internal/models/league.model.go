package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type League string

const (
	LeagueNBA League = "NBA"
	LeagueNFL League = "NFL"
	LeagueNHL League = "NHL"
	LeagueMLB League = "MLB"
	LeagueCFL League = "CFL"
	LeagueMLS League = "MLS"
)

// AllLeagues returns the supported leagues in regeneration order.
func AllLeagues() []League {
	return []League{LeagueNBA, LeagueNFL, LeagueNHL, LeagueMLB, LeagueCFL, LeagueMLS}
}

func ParseLeague(value string) (League, bool) {
	league := League(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range AllLeagues() {
		if league == known {
			return league, true
		}
	}
	return "", false
}

var (
	defaultTotal = decimal.RequireFromString("100.5")

	leagueTotals = map[League]decimal.Decimal{
		LeagueNBA: decimal.RequireFromString("220.5"),
		LeagueNFL: decimal.RequireFromString("48.5"),
		LeagueNHL: decimal.RequireFromString("5.5"),
		LeagueMLB: decimal.RequireFromString("8.5"),
		LeagueCFL: decimal.RequireFromString("52.5"),
		LeagueMLS: decimal.RequireFromString("2.5"),
	}

	leagueSpreads = map[League]decimal.Decimal{
		LeagueNBA: decimal.RequireFromString("5.5"),
		LeagueNFL: decimal.RequireFromString("3.5"),
		LeagueCFL: decimal.RequireFromString("3.5"),
	}

	defaultSpread = decimal.RequireFromString("1.5")
)

// Total returns the fixed over/under total used for this league's moderate
// tier. Unknown leagues fall back to 100.5.
func (l League) Total() decimal.Decimal {
	if total, ok := leagueTotals[l]; ok {
		return total
	}
	return defaultTotal
}

// SpreadMagnitude returns the fixed spread used for parlay spread legs.
func (l League) SpreadMagnitude() decimal.Decimal {
	if spread, ok := leagueSpreads[l]; ok {
		return spread
	}
	return defaultSpread
}

// SpreadLabel returns the league-specific name for a spread bet.
func (l League) SpreadLabel() string {
	switch l {
	case LeagueNHL:
		return "puckline"
	case LeagueMLB:
		return "runline"
	case LeagueMLS:
		return "goalline"
	default:
		return "spread"
	}
}

type BetType string

const (
	BetTypeMoneyline  BetType = "moneyline"
	BetTypeSpread     BetType = "spread"
	BetTypeOverUnder  BetType = "over_under"
	BetTypePlayerProp BetType = "player_prop"
	BetTypeParlay     BetType = "parlay"
)

func ParseBetType(value string) (BetType, bool) {
	betType := BetType(strings.ToLower(strings.TrimSpace(value)))
	switch betType {
	case BetTypeMoneyline, BetTypeSpread, BetTypeOverUnder, BetTypePlayerProp, BetTypeParlay:
		return betType, true
	}
	return "", false
}

type RiskTier string

const (
	RiskTierSafe     RiskTier = "safe"
	RiskTierModerate RiskTier = "moderate"
	RiskTierHailMary RiskTier = "hail_mary"
)

// AllRiskTiers returns the tiers in ascending risk order.
func AllRiskTiers() []RiskTier {
	return []RiskTier{RiskTierSafe, RiskTierModerate, RiskTierHailMary}
}
