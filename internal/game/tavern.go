package game

import (
	"fmt"
	"math/rand"

	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// TavernManager implements the recruit-phase operations (C8).
type TavernManager struct {
	pool   *CardPool
	spells *SpellPool
	rng    *rand.Rand
	logger gamelog.EventLogger
}

func NewTavernManager(pool *CardPool, spells *SpellPool, rng *rand.Rand, logger gamelog.EventLogger) *TavernManager {
	return &TavernManager{pool: pool, spells: spells, rng: rng, logger: logger}
}

func (tm *TavernManager) log(e gamelog.GameEvent) {
	if tm.logger != nil {
		tm.logger.Log(e)
	}
}

func (tm *TavernManager) process(players [2]*Player, turn int, ev Event, extra []TriggerInstance) {
	ctx := newEffectContext(players, tm.pool, tm.spells, tm.rng, tm.logger, turn)
	ProcessEvent(ctx, ev, extra)
}

// StartTurn resets the turn layer, dispatches start_of_turn, updates
// gold/upgrade cost, and refills the shop (preserving frozen items).
func (tm *TavernManager) StartTurn(players [2]*Player, side, turn int) {
	p := players[side]
	for _, u := range p.Board {
		u.ResetTurnLayer()
	}
	RecalculateBoardAuras(p.Board)

	tm.process(players, turn, Event{Type: EvtStartOfTurn, Side: side}, nil)
	tm.log(gamelog.NewStartOfTurnEvent(turn))

	p.Gold = StartingGold(turn) + p.GoldCarryover
	p.GoldCarryover = 0

	if p.UpCost > 0 && turn != 1 {
		p.UpCost--
	}

	var frozen []*StoreItem
	var notFrozenCardIDs []string
	for _, item := range p.Store {
		if item.Frozen {
			frozen = append(frozen, item)
		} else if item.Unit != nil {
			notFrozenCardIDs = append(notFrozenCardIDs, item.Unit.CardID)
		}
	}
	tm.pool.Return(notFrozenCardIDs)

	p.Store = nil
	for _, item := range frozen {
		item.Frozen = false
		p.Store = append(p.Store, item)
	}
	tm.fillTavern(p)
}

func (tm *TavernManager) fillTavern(p *Player) {
	slotsTotal := TavernSlots[p.TavernTier]
	slotsNeeded := slotsTotal - len(p.Store)
	if slotsNeeded <= 0 {
		return
	}
	ids := tm.pool.Draw(tm.rng, slotsNeeded, p.TavernTier)
	for _, cardID := range ids {
		card := LookupCard(cardID)
		u := NewUnit(card, p.UID)
		p.Store = append(p.Store, &StoreItem{Unit: u})
	}
	hasSpell := false
	for _, item := range p.Store {
		if item.isSpell() {
			hasSpell = true
			break
		}
	}
	if !hasSpell {
		spells := tm.spells.DrawSpells(tm.rng, 1, p.TavernTier)
		if len(spells) > 0 {
			p.Store = append(p.Store, &StoreItem{SpellID: spells[0]})
		}
	}
}

// Roll rerolls the shop, ignoring frozen state, for 1 gold.
func (tm *TavernManager) Roll(p *Player) (bool, string) {
	if p.Gold < CostReroll {
		return false, "not enough gold"
	}
	p.Gold -= CostReroll

	var cardIDs []string
	for _, item := range p.Store {
		if item.Unit != nil {
			cardIDs = append(cardIDs, item.Unit.CardID)
		}
	}
	tm.pool.Return(cardIDs)
	p.Store = nil
	tm.fillTavern(p)
	return true, "rolled"
}

// Buy moves shop slot i to the player's hand.
func (tm *TavernManager) Buy(players [2]*Player, side, i, turn int) (bool, string) {
	p := players[side]
	if i < 0 || i >= len(p.Store) {
		return false, "invalid index"
	}
	item := p.Store[i]
	cost := CostBuy
	if item.isSpell() {
		cost = LookupSpell(item.SpellID).Cost - p.SpellDiscount
		if cost < 0 {
			cost = 0
		}
	}
	if p.Gold < cost {
		return false, "not enough gold"
	}
	if len(p.Hand) >= MaxHandSize {
		return false, "hand is full"
	}

	p.Store = append(p.Store[:i], p.Store[i+1:]...)
	p.Gold -= cost

	if item.isSpell() {
		p.SpellDiscount = 0
		p.Hand = append(p.Hand, &HandCard{UID: newUID(), SpellID: item.SpellID, Temporary: LookupSpell(item.SpellID).IsTemporary})
		tm.log(gamelog.NewMinionBoughtEvent(turn, side, item.SpellID))
	} else {
		item.Unit.IsFrozen = false
		p.Hand = append(p.Hand, &HandCard{UID: item.Unit.UID, Unit: item.Unit})
		tm.log(gamelog.NewMinionBoughtEvent(turn, side, item.Unit.CardID))
	}

	tm.process(players, turn, Event{Type: EvtMinionAddedToShop, Side: side}, nil)
	tm.checkTriplet(players, side, turn)
	return true, "bought"
}

// Sell removes board slot i, grants 1 gold, and returns its card (plus
// any absorbed copies) to the pool.
func (tm *TavernManager) Sell(players [2]*Player, side, i, turn int) (bool, string) {
	p := players[side]
	if i < 0 || i >= len(p.Board) {
		return false, "invalid index"
	}
	u := p.Board[i]

	tm.process(players, turn, Event{Type: EvtMinionSold, Source: u.UID, Side: side, SourcePos: &PosRef{Side: side, Zone: ZoneBoard, Slot: i}}, nil)

	p.Board = append(p.Board[:i], p.Board[i+1:]...)
	RecalculateBoardAuras(p.Board)
	p.Gold++

	returned := []string{u.CardID}
	for _, id := range sortedStringKeys(u.Absorbed) {
		n := u.Absorbed[id]
		copies := 1
		if u.IsGolden {
			copies = 3
		}
		for i := 0; i < n*copies; i++ {
			returned = append(returned, id)
		}
	}
	tm.pool.Return(returned)
	tm.log(gamelog.NewMinionSoldEvent(turn, side, u.CardID))
	return true, "sold"
}

// Play moves hand slot h onto the board at insertIndex (units) or
// resolves it as a one-shot effect (spells).
func (tm *TavernManager) Play(players [2]*Player, side, h, insertIndex, targetIndex, turn int) (bool, string) {
	p := players[side]
	if h < 0 || h >= len(p.Hand) {
		return false, "invalid hand index"
	}
	card := p.Hand[h]

	if card.isSpell() {
		spell := LookupSpell(card.SpellID)
		var target EntityRef
		if targetIndex >= 0 {
			if targetIndex >= len(p.Board) {
				return false, "invalid target"
			}
			target = p.Board[targetIndex].UID
		}
		p.Hand = append(p.Hand[:h], p.Hand[h+1:]...)
		extra := []TriggerInstance{{
			Def: TriggerDef{
				Name:      "spell:" + spell.ID,
				EventType: EvtSpellCast,
				Effect:    spellEffectForCard(spell, card.RewardTier),
			},
			OwnerUID: target,
			Stacks:   1,
		}}
		tm.process(players, turn, Event{Type: EvtSpellCast, Source: target, Side: side}, extra)
		tm.log(gamelog.GameEvent{Turn: turn, Phase: "recruit", Side: side, Type: gamelog.EventSpellCast, CardID: spell.ID, Details: fmt.Sprintf("P%d casts %s", side+1, spell.Name)})
		return true, "cast spell"
	}

	if len(p.Board) >= MaxBoardSize {
		return false, "board is full"
	}
	real := insertIndex
	if real < 0 {
		real = 0
	}
	if real > len(p.Board) {
		real = len(p.Board)
	}

	u := card.Unit
	p.Hand = append(p.Hand[:h], p.Hand[h+1:]...)
	p.Board = append(p.Board, nil)
	copy(p.Board[real+1:], p.Board[real:])
	p.Board[real] = u
	RecalculateBoardAuras(p.Board)

	var targetRef *EntityRef
	if targetIndex >= 0 && targetIndex < len(p.Board) {
		t := p.Board[targetIndex].UID
		targetRef = &t
	}
	ev := Event{Type: EvtMinionPlayed, Source: u.UID, Side: side, SourcePos: &PosRef{Side: side, Zone: ZoneBoard, Slot: real}}
	if targetRef != nil {
		ev.Target = *targetRef
	}
	tm.log(gamelog.NewMinionPlayedEvent(turn, side, u.CardID, real))
	tm.process(players, turn, ev, nil)
	tm.process(players, turn, Event{Type: EvtMinionSummoned, Source: u.UID, Side: side, SourcePos: &PosRef{Side: side, Zone: ZoneBoard, Slot: real}}, nil)

	tm.checkTriplet(players, side, turn)
	return true, "played"
}

// Swap exchanges two board slots.
func (tm *TavernManager) Swap(p *Player, a, b int) (bool, string) {
	n := len(p.Board)
	if a < 0 || a >= n || b < 0 || b >= n {
		return false, "invalid indices"
	}
	if a == b {
		return false, "same index"
	}
	p.Board[a], p.Board[b] = p.Board[b], p.Board[a]
	RecalculateBoardAuras(p.Board)
	return true, "swapped"
}

// Freeze toggles freeze on the entire shop.
func (tm *TavernManager) Freeze(p *Player) (bool, string) {
	allFrozen := true
	for _, item := range p.Store {
		if !item.Frozen {
			allFrozen = false
			break
		}
	}
	for _, item := range p.Store {
		item.Frozen = !allFrozen
	}
	if allFrozen {
		return true, "unfrozen"
	}
	return true, "frozen"
}

// Upgrade advances the player's tavern tier.
func (tm *TavernManager) Upgrade(p *Player) (bool, string) {
	if p.TavernTier >= 6 {
		return false, "max tier reached"
	}
	cost := p.UpCost
	if p.Gold < cost {
		return false, "not enough gold"
	}
	p.Gold -= cost
	p.TavernTier++
	p.UpCost = TierUpgradeCosts[p.TavernTier+1] // 0 at tier 6, matching TierUpgradeCosts' lack of a 7 entry
	return true, fmt.Sprintf("upgraded to tier %d", p.TavernTier)
}

// DiscoverChoice resolves option i of an in-progress discovery.
func (tm *TavernManager) DiscoverChoice(p *Player, i int) (bool, string) {
	if !p.Discovery.Active {
		return false, "no discovery in progress"
	}
	if i < 0 || i >= len(p.Discovery.Options) {
		return false, "invalid option"
	}
	chosen := p.Discovery.Options[i]
	var others []string
	for j, id := range p.Discovery.Options {
		if j != i {
			others = append(others, id)
		}
	}
	tm.pool.Return(others)

	if len(p.Hand) < MaxHandSize {
		card := LookupCard(chosen)
		p.Hand = append(p.Hand, &HandCard{UID: newUID(), Unit: NewUnit(card, p.UID)})
	}
	p.Discovery = DiscoveryState{}
	return true, "discovered"
}

// EndTurn removes temporary hand cards.
func (tm *TavernManager) EndTurn(p *Player) {
	kept := p.Hand[:0]
	for _, h := range p.Hand {
		if !h.Temporary {
			kept = append(kept, h)
		}
	}
	p.Hand = kept
}

// checkTriplet merges three non-golden copies of the same card-id across
// hand+board into one golden copy plus a triplet-reward spell.
func (tm *TavernManager) checkTriplet(players [2]*Player, side, turn int) {
	p := players[side]
	counts := map[string][]*Unit{}
	for _, u := range p.Board {
		if !u.IsGolden {
			counts[u.CardID] = append(counts[u.CardID], u)
		}
	}
	for _, h := range p.Hand {
		if h.Unit != nil && !h.Unit.IsGolden {
			counts[h.Unit.CardID] = append(counts[h.Unit.CardID], h.Unit)
		}
	}
	for _, cardID := range sortedStringKeysSlice(counts) {
		units := counts[cardID]
		if len(units) < 3 {
			continue
		}
		three := units[:3]
		permAtk, permHP, turnAtk, turnHP := 0, 0, 0, 0
		for _, u := range three {
			permAtk += u.PermAtk
			permHP += u.PermHP
			turnAtk += u.TurnAtk
			turnHP += u.TurnHP
		}
		for _, u := range three {
			removeUnit(p, u.UID)
		}
		card := LookupCard(cardID)
		golden := NewUnit(card, side)
		golden.IsGolden = true
		golden.PermAtk, golden.PermHP = permAtk, permHP
		golden.TurnAtk, golden.TurnHP = turnAtk, turnHP
		golden.Recompute()
		golden.CurHP = golden.MaxHP
		p.Board = append(p.Board, golden)
		RecalculateBoardAuras(p.Board)

		rewardTier := p.TavernTier + 1
		if rewardTier > 6 {
			rewardTier = 6
		}
		if len(p.Hand) < MaxHandSize {
			p.Hand = append(p.Hand, &HandCard{UID: newUID(), SpellID: "S999", RewardTier: rewardTier})
		}
		tm.log(gamelog.GameEvent{Turn: turn, Phase: "recruit", Side: side, Type: gamelog.EventTriplet, CardID: cardID, Details: fmt.Sprintf("P%d triples %s into a golden copy", side+1, cardID)})
	}
}

func removeUnit(p *Player, uid EntityRef) {
	for i, u := range p.Board {
		if u.UID == uid {
			p.Board = append(p.Board[:i], p.Board[i+1:]...)
			return
		}
	}
	for i, h := range p.Hand {
		if h.Unit != nil && h.Unit.UID == uid {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

func sortedStringKeysSlice(m map[string][]*Unit) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
