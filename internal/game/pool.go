package game

import "math/rand"

// CardPool holds one inventory per tier, populated with per-card copy
// counts from TierCopies. Tokens and non-pool cards are excluded.
type CardPool struct {
	tiers map[int][]string // tier -> card-ids, one entry per remaining copy
}

// NewCardPool builds a pool from every registered card.
func NewCardPool() *CardPool {
	pool := &CardPool{tiers: make(map[int][]string)}
	for t := range TierCopies {
		pool.tiers[t] = nil
	}
	// deterministic iteration: registration order isn't guaranteed for a
	// Go map, so walk card ids in sorted order before extending the pool.
	for _, id := range sortedCardIDs() {
		c := CardRegistry[id]
		if c.IsToken || !c.Pool {
			continue
		}
		count := TierCopies[c.Tier]
		for i := 0; i < count; i++ {
			pool.tiers[c.Tier] = append(pool.tiers[c.Tier], c.ID)
		}
	}
	return pool
}

func sortedCardIDs() []string {
	ids := make([]string, 0, len(CardRegistry))
	for id := range CardRegistry {
		ids = append(ids, id)
	}
	// simple insertion sort: registries are small (tens of cards), and we
	// want a stdlib-free, obviously-deterministic sort here rather than
	// pulling in sort for one call site with no third-party analog in
	// the pack.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

func sortedTierKeys(tiers map[int][]string, maxTier int) []int {
	var keys []int
	for t := range tiers {
		if t <= maxTier {
			keys = append(keys, t)
		}
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Draw removes count cards from the pool, sampling a tier with weight
// proportional to its current inventory size across tiers <= maxTier,
// then removing one random copy from the chosen tier.
func (p *CardPool) Draw(rng *rand.Rand, count, maxTier int) []string {
	var drawn []string
	for i := 0; i < count; i++ {
		tiers := sortedTierKeys(p.tiers, maxTier)
		total := 0
		for _, t := range tiers {
			total += len(p.tiers[t])
		}
		if total == 0 {
			break
		}
		r := rng.Intn(total)
		chosen := tiers[0]
		for _, t := range tiers {
			n := len(p.tiers[t])
			if r < n {
				chosen = t
				break
			}
			r -= n
		}
		idx := rng.Intn(len(p.tiers[chosen]))
		cardID := p.tiers[chosen][idx]
		p.tiers[chosen] = append(p.tiers[chosen][:idx], p.tiers[chosen][idx+1:]...)
		drawn = append(drawn, cardID)
	}
	return drawn
}

// Return pushes copies back into the pool. Tokens/non-pool cards are ignored.
func (p *CardPool) Return(ids []string) {
	for _, id := range ids {
		c, ok := CardRegistry[id]
		if !ok || c.IsToken || !c.Pool {
			continue
		}
		p.tiers[c.Tier] = append(p.tiers[c.Tier], id)
	}
}

// DrawDiscovery samples count unique card-ids without replacement from
// the eligible tier range, filtered by predicate, and removes the chosen
// ids from the pool (the others stay in place).
func (p *CardPool) DrawDiscovery(rng *rand.Rand, count, tier int, exact bool, predicate func(*Card) bool) []string {
	var searchTiers []int
	for t := range p.tiers {
		if exact {
			if t == tier {
				searchTiers = append(searchTiers, t)
			}
		} else if t <= tier {
			searchTiers = append(searchTiers, t)
		}
	}
	for i := 1; i < len(searchTiers); i++ {
		for j := i; j > 0 && searchTiers[j-1] > searchTiers[j]; j-- {
			searchTiers[j-1], searchTiers[j] = searchTiers[j], searchTiers[j-1]
		}
	}

	seen := map[string]bool{}
	var candidates []string
	for _, t := range searchTiers {
		for _, id := range p.tiers[t] {
			if seen[id] {
				continue
			}
			seen[id] = true
			c := CardRegistry[id]
			if predicate != nil && !predicate(c) {
				continue
			}
			candidates = append(candidates, id)
		}
	}
	// sort candidates for deterministic sampling order before shuffling
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j-1] > candidates[j]; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	k := count
	if k > len(candidates) {
		k = len(candidates)
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	chosen := candidates[:k]

	for _, id := range chosen {
		c := CardRegistry[id]
		tierList := p.tiers[c.Tier]
		for i, cid := range tierList {
			if cid == id {
				p.tiers[c.Tier] = append(tierList[:i], tierList[i+1:]...)
				break
			}
		}
	}
	return chosen
}

// SpellPool exposes uniform-at-random spell draws by tier.
type SpellPool struct {
	tiers map[int][]string
}

// NewSpellPool builds a spell pool from every registered spell flagged
// for the pool.
func NewSpellPool() *SpellPool {
	sp := &SpellPool{tiers: make(map[int][]string)}
	ids := make([]string, 0, len(SpellRegistry))
	for id := range SpellRegistry {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	for _, id := range ids {
		s := SpellRegistry[id]
		if !s.Pool {
			continue
		}
		sp.tiers[s.Tier] = append(sp.tiers[s.Tier], id)
	}
	return sp
}

// DrawSpells samples count spell-ids uniformly: a tier uniformly among
// eligible tiers, then a spell uniformly within that tier.
func (sp *SpellPool) DrawSpells(rng *rand.Rand, count, maxTier int) []string {
	tiers := sortedTierKeys(sp.tiers, maxTier)
	var eligible []int
	for _, t := range tiers {
		if len(sp.tiers[t]) > 0 {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	var drawn []string
	for i := 0; i < count; i++ {
		t := eligible[rng.Intn(len(eligible))]
		list := sp.tiers[t]
		drawn = append(drawn, list[rng.Intn(len(list))])
	}
	return drawn
}
