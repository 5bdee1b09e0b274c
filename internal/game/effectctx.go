package game

import (
	"math/rand"

	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// EffectContext is the mutation API exposed to effect functions (C5).
// Recruit-phase operations construct one per top-level ProcessEvent
// call; combat constructs one per Resolve and reuses it for every
// ProcessEvent call of that combat. Every trigger fired while draining
// an event's queue shares the same context.
type EffectContext struct {
	players [2]*Player
	pool    *CardPool
	spells  *SpellPool
	rng     *rand.Rand
	logger  gamelog.EventLogger
	turn    int

	queue []Event
	index map[EntityRef]PosRef
}

func newEffectContext(players [2]*Player, pool *CardPool, spells *SpellPool, rng *rand.Rand, logger gamelog.EventLogger, turn int) *EffectContext {
	ctx := &EffectContext{players: players, pool: pool, spells: spells, rng: rng, logger: logger, turn: turn}
	ctx.Reindex()
	return ctx
}

// Reindex rebuilds the uid -> PosRef index from the current board/hand/
// shop contents of both players. Must be called after any mutation that
// can move or remove entities (§4.4).
func (ctx *EffectContext) Reindex() {
	ctx.index = map[EntityRef]PosRef{}
	for side, p := range ctx.players {
		for slot, u := range p.Board {
			ctx.index[u.UID] = PosRef{Side: side, Zone: ZoneBoard, Slot: slot}
		}
		for slot, h := range p.Hand {
			if h.Unit != nil {
				ctx.index[h.UID] = PosRef{Side: side, Zone: ZoneHand, Slot: slot}
			}
		}
		for slot, s := range p.Store {
			if s.Unit != nil {
				ctx.index[s.Unit.UID] = PosRef{Side: side, Zone: ZoneShop, Slot: slot}
			}
		}
	}
}

// ResolvePos returns the current position of ref, or false if it no
// longer exists.
func (ctx *EffectContext) ResolvePos(ref EntityRef) (PosRef, bool) {
	pos, ok := ctx.index[ref]
	return pos, ok
}

// ResolveUnit returns the current unit for ref, or nil if it no longer
// exists or does not live on a board.
func (ctx *EffectContext) ResolveUnit(ref EntityRef) *Unit {
	pos, ok := ctx.index[ref]
	if !ok || pos.Zone != ZoneBoard {
		return nil
	}
	if pos.Slot >= len(ctx.players[pos.Side].Board) {
		return nil
	}
	u := ctx.players[pos.Side].Board[pos.Slot]
	if u.UID != ref {
		return nil
	}
	return u
}

// IterBoardUnits returns a copy of side's board in slot order, including
// any 0-HP units that death cleanup has not yet removed.
func (ctx *EffectContext) IterBoardUnits(side int) []*Unit {
	return append([]*Unit(nil), ctx.players[side].Board...)
}

// IterStoreUnits returns the live shop units (not spells) on side, in slot order.
func (ctx *EffectContext) IterStoreUnits(side int) []*Unit {
	var out []*Unit
	for _, s := range ctx.players[side].Store {
		if s.Unit != nil {
			out = append(out, s.Unit)
		}
	}
	return out
}

// GainGold adds n gold to side (clamped at 0).
func (ctx *EffectContext) GainGold(side int, n int) {
	ctx.players[side].Gold += n
	if ctx.players[side].Gold < 0 {
		ctx.players[side].Gold = 0
	}
}

// DamageHero reduces side's health by n.
func (ctx *EffectContext) DamageHero(side int, n int) {
	ctx.players[side].Health -= n
}

// BuffPerm adds atk/hp to ref's permanent layer and recomputes.
func (ctx *EffectContext) BuffPerm(ref EntityRef, atk, hp int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.PermAtk += atk
		u.PermHP += hp
		u.Recompute()
	}
}

// BuffTurn adds atk/hp to ref's turn layer and recomputes.
func (ctx *EffectContext) BuffTurn(ref EntityRef, atk, hp int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.TurnAtk += atk
		u.TurnHP += hp
		u.Recompute()
	}
}

// BuffCombat adds atk/hp to ref's combat layer and recomputes.
func (ctx *EffectContext) BuffCombat(ref EntityRef, atk, hp int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.CombatAtk += atk
		u.CombatHP += hp
		u.Recompute()
	}
}

// AttachEffectPerm increments the permanent attached-effect counter.
func (ctx *EffectContext) AttachEffectPerm(ref EntityRef, effectID string, count int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.AttachedPerm[effectID] += count
	}
}

// AttachEffectTurn increments the turn-scoped attached-effect counter.
func (ctx *EffectContext) AttachEffectTurn(ref EntityRef, effectID string, count int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.AttachedTurn[effectID] += count
	}
}

// AttachEffectCombat increments the combat-scoped attached-effect counter.
func (ctx *EffectContext) AttachEffectCombat(ref EntityRef, effectID string, count int) {
	if u := ctx.ResolveUnit(ref); u != nil {
		u.AttachedCombat[effectID] += count
	}
}

// AddSpellToHand appends a spell card to side's hand, capped at MaxHandSize.
func (ctx *EffectContext) AddSpellToHand(side int, spellID string) bool {
	p := ctx.players[side]
	if len(p.Hand) >= MaxHandSize {
		return false
	}
	p.Hand = append(p.Hand, &HandCard{UID: newUID(), SpellID: spellID})
	return true
}

// Summon constructs a fresh unit on side's board at the clamped slot (if
// room remains), reindexes, recomputes auras, and enqueues a
// minion_summoned event for cascading triggers. Returns the new unit, or
// nil if the board was full.
func (ctx *EffectContext) Summon(side int, cardID string, slot int, isGolden bool) *Unit {
	p := ctx.players[side]
	if len(p.Board) >= MaxBoardSize {
		return nil
	}
	card := LookupCard(cardID)
	u := NewUnit(card, side)
	u.IsGolden = isGolden
	if isGolden {
		u.Recompute()
		u.CurHP = u.MaxHP
	}
	if slot < 0 {
		slot = 0
	}
	if slot > len(p.Board) {
		slot = len(p.Board)
	}
	p.Board = append(p.Board, nil)
	copy(p.Board[slot+1:], p.Board[slot:])
	p.Board[slot] = u

	ctx.Reindex()
	RecalculateBoardAuras(p.Board)

	ctx.EmitEvent(Event{Type: EvtMinionSummoned, Source: u.UID, Side: side, SourcePos: &PosRef{Side: side, Zone: ZoneBoard, Slot: slot}})
	return u
}

// DamageUnit applies n damage to ref outside the combat pipeline (used
// by non-combat effects such as deathrattles): divine shield still
// absorbs the first instance, consumed regardless of amount.
func (ctx *EffectContext) DamageUnit(ref EntityRef, n int) {
	u := ctx.ResolveUnit(ref)
	if u == nil {
		return
	}
	pos, _ := ctx.ResolvePos(ref)
	if u.HasTag(TagDivineShield) {
		delete(u.Tags, TagDivineShield)
		ctx.EmitEvent(Event{Type: EvtDivineShieldLost, Target: ref, Side: pos.Side})
		return
	}
	u.CurHP -= n
	if u.CurHP < 0 {
		u.CurHP = 0
	}
	if n != 0 {
		ctx.EmitEvent(Event{Type: EvtMinionDamaged, Target: ref, Value: n, Side: pos.Side})
		ctx.EmitEvent(Event{Type: EvtDamageDealt, Target: ref, Value: n, Side: pos.Side})
	}
}

// EmitEvent appends e to the current dispatch queue.
func (ctx *EffectContext) EmitEvent(e Event) {
	ctx.queue = append(ctx.queue, e)
}

// RNG exposes the game's single seeded random stream.
func (ctx *EffectContext) RNG() *rand.Rand { return ctx.rng }

// Log records an observable event, if a logger is attached.
func (ctx *EffectContext) Log(e gamelog.GameEvent) {
	if ctx.logger != nil {
		e.Turn = ctx.turn
		ctx.logger.Log(e)
	}
}
