package game

import "testing"

func TestDrawRemovesFromPool(t *testing.T) {
	CardRegistry = map[string]*Card{} // the pool is built from every registered card: start empty
	testCard("p_one", 1, 1, 1, nil)
	testCard("p_two", 1, 1, 1, nil)
	pool := NewCardPool()

	total := 0
	for _, ids := range pool.tiers {
		total += len(ids)
	}
	if total != TierCopies[1]*2 {
		t.Fatalf("fresh pool size = %d, want %d", total, TierCopies[1]*2)
	}

	rng := newTestRNG()
	drawn := pool.Draw(rng, 5, 1)
	if len(drawn) != 5 {
		t.Fatalf("drew %d cards, want 5", len(drawn))
	}

	remaining := 0
	for _, ids := range pool.tiers {
		remaining += len(ids)
	}
	if remaining != total-5 {
		t.Fatalf("remaining pool size = %d, want %d", remaining, total-5)
	}
}

func TestDrawRespectsMaxTier(t *testing.T) {
	CardRegistry = map[string]*Card{}
	testCard("p_low", 1, 1, 1, nil)
	testCard("p_high", 6, 1, 1, nil)
	pool := NewCardPool()
	rng := newTestRNG()

	for i := 0; i < 200; i++ {
		drawn := pool.Draw(rng, 1, 1)
		if len(drawn) == 0 {
			break
		}
		if drawn[0] != "p_low" {
			t.Fatalf("draw with maxTier=1 returned %q, a tier-6 card leaked through", drawn[0])
		}
	}
}

func TestReturnRestoresCopies(t *testing.T) {
	CardRegistry = map[string]*Card{}
	testCard("p_ret", 1, 1, 1, nil)
	pool := NewCardPool()
	rng := newTestRNG()

	drawn := pool.Draw(rng, TierCopies[1], 1)
	empty := 0
	for _, ids := range pool.tiers {
		empty += len(ids)
	}
	if empty != 0 {
		t.Fatalf("pool should be exhausted, has %d left", empty)
	}

	pool.Return(drawn)
	restored := 0
	for _, ids := range pool.tiers {
		restored += len(ids)
	}
	if restored != TierCopies[1] {
		t.Fatalf("pool after return = %d, want %d", restored, TierCopies[1])
	}
}

func TestReturnIgnoresTokens(t *testing.T) {
	testToken("p_token", 1, 1, 1, nil)
	pool := NewCardPool()
	before := 0
	for _, ids := range pool.tiers {
		before += len(ids)
	}
	pool.Return([]string{"p_token"})
	after := 0
	for _, ids := range pool.tiers {
		after += len(ids)
	}
	if before != after {
		t.Fatalf("returning a token must be a no-op, pool size went from %d to %d", before, after)
	}
}

func TestDrawDiscoveryNoReplacement(t *testing.T) {
	testCard("p_d1", 1, 1, 1, nil)
	testCard("p_d2", 1, 1, 1, nil)
	testCard("p_d3", 1, 1, 1, nil)
	pool := NewCardPool()
	rng := newTestRNG()

	chosen := pool.DrawDiscovery(rng, 3, 1, true, nil)
	if len(chosen) != 3 {
		t.Fatalf("discovery returned %d candidates, want 3", len(chosen))
	}
	seen := map[string]bool{}
	for _, id := range chosen {
		if seen[id] {
			t.Fatalf("discovery returned duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestDrawDiscoveryHonorsPredicate(t *testing.T) {
	CardRegistry = map[string]*Card{}
	testCard("p_beast", 1, 1, 1, []UnitType{TypeBeast})
	testCard("p_murloc", 1, 1, 1, []UnitType{TypeMurloc})
	pool := NewCardPool()
	rng := newTestRNG()

	chosen := pool.DrawDiscovery(rng, 5, 1, true, func(c *Card) bool {
		for _, ut := range c.Types {
			if ut == TypeBeast {
				return true
			}
		}
		return false
	})
	for _, id := range chosen {
		if id != "p_beast" {
			t.Fatalf("predicate should have filtered out %q", id)
		}
	}
}

func TestDrawSpellsUniformAcrossTiers(t *testing.T) {
	SpellRegistry = map[string]*Spell{} // the spell pool is built from every registered spell: start empty
	RegisterSpell(&Spell{ID: "p_s1", Name: "p_s1", Tier: 1, Pool: true})
	RegisterSpell(&Spell{ID: "p_s2", Name: "p_s2", Tier: 2, Pool: true})
	sp := NewSpellPool()
	rng := newTestRNG()

	drawn := sp.DrawSpells(rng, 10, 2)
	if len(drawn) != 10 {
		t.Fatalf("drew %d spells, want 10", len(drawn))
	}
	for _, id := range drawn {
		if id != "p_s1" && id != "p_s2" {
			t.Fatalf("unexpected spell id %q", id)
		}
	}
}
