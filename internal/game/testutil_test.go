package game

import "math/rand"

// testCard registers a minimal fixture card directly into CardRegistry,
// bypassing the YAML loader, mirroring the teacher's vanillaAgent-style
// inline fixture builders.
func testCard(id string, tier, atk, hp int, types []UnitType, tags ...Tag) *Card {
	tagSet := map[Tag]bool{}
	for _, t := range tags {
		tagSet[t] = true
	}
	c := &Card{ID: id, Name: id, Tier: tier, Atk: atk, HP: hp, Types: types, Tags: tagSet, Pool: true}
	RegisterCard(c)
	return c
}

func testToken(id string, tier, atk, hp int, types []UnitType, tags ...Tag) *Card {
	c := testCard(id, tier, atk, hp, types, tags...)
	c.IsToken = true
	c.Pool = false
	return c
}

// newTestPlayers builds an empty two-player pair for direct board
// manipulation in unit tests.
func newTestPlayers() [2]*Player {
	return [2]*Player{NewPlayer(0), NewPlayer(1)}
}

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func unitAt(players [2]*Player, side, slot int) *Unit {
	return players[side].Board[slot]
}
