package game

// Ruleset constants. These are part of the game's rules, not deployment
// configuration, so they are Go constants/maps rather than data loaded
// from a config file (unlike the card/spell database, see carddb.go).

const (
	MaxBoardSize = 7
	MaxHandSize  = 10
	StartGold    = 3
	MaxGold      = 10
	CostBuy      = 3
	CostReroll   = 1
)

// TierCopies is the per-card copy count seeded into the pool, by tier.
var TierCopies = map[int]int{
	1: 16,
	2: 15,
	3: 13,
	4: 11,
	5: 9,
	6: 7,
}

// TavernSlots is the shop size at each tavern tier.
var TavernSlots = map[int]int{
	1: 3,
	2: 4,
	3: 4,
	4: 5,
	5: 5,
	6: 6,
}

// TierUpgradeCosts is the gold cost to upgrade *into* the given tier.
var TierUpgradeCosts = map[int]int{
	2: 5,
	3: 7,
	4: 8,
	5: 9,
	6: 10,
}

// MechanicDefaults gives the starting (bonus_atk, bonus_hp) pair for a
// per-player mechanic counter the first time it is touched.
var MechanicDefaults = map[MechanicType][2]int{
	MechanicBloodGem:     {1, 1},
	MechanicElementalBuff: {0, 0},
}

// StartingGold implements the start_turn gold formula: min(10, 3+n-1).
func StartingGold(turn int) int {
	g := StartGold + turn - 1
	if g > MaxGold {
		g = MaxGold
	}
	if g < 0 {
		g = 0
	}
	return g
}
