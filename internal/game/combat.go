package game

import (
	"math/rand"

	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// CombatManager resolves one combat between two players' boards (C7).
type CombatManager struct {
	rng    *rand.Rand
	logger gamelog.EventLogger
}

func NewCombatManager(rng *rand.Rand, logger gamelog.EventLogger) *CombatManager {
	return &CombatManager{rng: rng, logger: logger}
}

// Resolve runs combat between the two real players' current boards to
// completion, without mutating either recruit-phase board, and returns
// the outcome from side 0's perspective plus the damage magnitude.
func (cm *CombatManager) Resolve(real [2]*Player, turn int) (BattleOutcome, int) {
	combatPlayers := [2]*Player{
		{UID: 0, Health: real[0].Health, TavernTier: real[0].TavernTier},
		{UID: 1, Health: real[1].Health, TavernTier: real[1].TavernTier},
	}
	for side := range combatPlayers {
		for _, u := range real[side].Board {
			combatPlayers[side].Board = append(combatPlayers[side].Board, u.CombatCopy())
		}
		RecalculateBoardAuras(combatPlayers[side].Board)
	}

	ctx := newEffectContext(combatPlayers, nil, nil, cm.rng, cm.logger, turn)
	cm.log(gamelog.NewStartOfCombatEvent(turn))
	ProcessEvent(ctx, Event{Type: EvtStartOfCombat}, nil)

	attackIdx := [2]int{0, 0}
	cm.deathCleanup(ctx, &attackIdx)

	if outcome, dmg, done := cm.checkTermination(combatPlayers); done {
		return cm.finish(combatPlayers, outcome, dmg, turn)
	}

	activeSide := cm.pickFirstAttacker(combatPlayers)
	unableToAttack := [2]bool{}

	for {
		for {
			queue := cm.collectImmediateAttackers(combatPlayers, activeSide)
			if len(queue) == 0 {
				break
			}
			for _, item := range queue {
				u := ctx.ResolveUnit(item.uid)
				if u == nil || !u.IsAlive() {
					continue
				}
				cm.performAttack(ctx, item.side, u)
				cm.deathCleanup(ctx, &attackIdx)
				if outcome, dmg, done := cm.checkTermination(combatPlayers); done {
					return cm.finish(combatPlayers, outcome, dmg, turn)
				}
			}
		}

		attacker := advanceToAttacker(combatPlayers[activeSide].Board, &attackIdx[activeSide])
		if attacker == nil {
			unableToAttack[activeSide] = true
			if unableToAttack[0] && unableToAttack[1] {
				return cm.finish(combatPlayers, Draw, 0, turn)
			}
		} else {
			unableToAttack[activeSide] = false
			attackerUID := attacker.UID
			cm.performAttack(ctx, activeSide, attacker)
			cm.deathCleanup(ctx, &attackIdx)
			if outcome, dmg, done := cm.checkTermination(combatPlayers); done {
				return cm.finish(combatPlayers, outcome, dmg, turn)
			}
			if again := ctx.ResolveUnit(attackerUID); again != nil && again.IsAlive() && again.HasTag(TagWindfury) {
				cm.performAttack(ctx, activeSide, again)
				cm.deathCleanup(ctx, &attackIdx)
				if outcome, dmg, done := cm.checkTermination(combatPlayers); done {
					return cm.finish(combatPlayers, outcome, dmg, turn)
				}
			}
		}
		activeSide = 1 - activeSide
	}
}

func (cm *CombatManager) finish(players [2]*Player, outcome BattleOutcome, dmg int, turn int) (BattleOutcome, int) {
	cm.log(gamelog.NewEndOfCombatEvent(turn, outcome.String(), dmg))
	return outcome, dmg
}

func (cm *CombatManager) log(e gamelog.GameEvent) {
	if cm.logger != nil {
		cm.logger.Log(e)
	}
}

func (cm *CombatManager) pickFirstAttacker(players [2]*Player) int {
	n0, n1 := len(players[0].Board), len(players[1].Board)
	if n0 > n1 {
		return 0
	}
	if n1 > n0 {
		return 1
	}
	return cm.rng.Intn(2)
}

type immediateAttacker struct {
	side int
	uid  EntityRef
}

// collectImmediateAttackers scans activeSide first then the opponent,
// clearing the immediate_attack tag at enqueue time to prevent re-scans
// from re-collecting the same unit.
func (cm *CombatManager) collectImmediateAttackers(players [2]*Player, activeSide int) []immediateAttacker {
	var out []immediateAttacker
	for _, side := range [2]int{activeSide, 1 - activeSide} {
		for _, u := range players[side].Board {
			if u.HasTag(TagImmediateAttack) {
				delete(u.Tags, TagImmediateAttack)
				out = append(out, immediateAttacker{side: side, uid: u.UID})
			}
		}
	}
	return out
}

// advanceToAttacker advances idx past any zero-attack units and returns
// the next attacker, or nil if none on the board can attack.
func advanceToAttacker(board []*Unit, idx *int) *Unit {
	n := len(board)
	if n == 0 {
		return nil
	}
	if *idx >= n {
		*idx = 0
	}
	start := *idx
	for i := 0; i < n; i++ {
		pos := (start + i) % n
		if board[pos].CurAtk > 0 {
			*idx = (pos + 1) % n
			return board[pos]
		}
	}
	return nil
}

// performAttack runs the full damage pipeline for one attack (§4.6).
func (cm *CombatManager) performAttack(ctx *EffectContext, attackerSide int, attacker *Unit) {
	defenderSide := 1 - attackerSide
	target := cm.selectTarget(ctx.players[defenderSide].Board)
	if target == nil {
		return
	}

	ctx.EmitEvent(Event{Type: EvtAttackDeclared, Source: attacker.UID, Target: target.UID, Side: attackerSide})
	cm.log(gamelog.NewAttackDeclaredEvent(ctx.turn, attackerSide, attacker.CardID, target.CardID))

	cm.applyDamageBatch(ctx, attackerSide, attacker, defenderSide, target, true)
	cm.applyDamageBatch(ctx, defenderSide, target, attackerSide, attacker, false)

	ctx.EmitEvent(Event{Type: EvtAfterAttack, Source: attacker.UID, Target: target.UID, Side: attackerSide})
}

func (cm *CombatManager) selectTarget(board []*Unit) *Unit {
	var taunts, all []*Unit
	for _, u := range board {
		if !u.IsAlive() {
			continue
		}
		all = append(all, u)
		if u.HasTag(TagTaunt) {
			taunts = append(taunts, u)
		}
	}
	if len(taunts) > 0 {
		return taunts[cm.rng.Intn(len(taunts))]
	}
	if len(all) == 0 {
		return nil
	}
	return all[cm.rng.Intn(len(all))]
}

// applyDamageBatch applies attacker's damage to target and, if attacker
// has cleave, to target's immediate neighbors, in left/center/right
// order. withCleave gates cleave (retaliation never cleaves).
func (cm *CombatManager) applyDamageBatch(ctx *EffectContext, attackerSide int, attacker *Unit, defenderSide int, target *Unit, withCleave bool) {
	if attacker.CurAtk <= 0 {
		return
	}
	board := ctx.players[defenderSide].Board
	targetIdx := -1
	for i, u := range board {
		if u.UID == target.UID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return
	}

	var victims []*Unit
	if withCleave && attacker.HasTag(TagCleave) {
		if targetIdx > 0 {
			victims = append(victims, board[targetIdx-1])
		}
	}
	victims = append(victims, target)
	if withCleave && attacker.HasTag(TagCleave) {
		if targetIdx < len(board)-1 {
			victims = append(victims, board[targetIdx+1])
		}
	}

	for _, victim := range victims {
		if !victim.IsAlive() {
			continue
		}
		if victim.HasTag(TagDivineShield) {
			delete(victim.Tags, TagDivineShield)
			ctx.EmitEvent(Event{Type: EvtDivineShieldLost, Target: victim.UID, Side: defenderSide})
			continue
		}
		preHP := victim.CurHP
		dmg := attacker.CurAtk
		victim.CurHP -= dmg
		if attacker.HasTag(TagPoisonous) || attacker.HasTag(TagVenomous) {
			victim.CurHP = 0
			if attacker.HasTag(TagVenomous) {
				delete(attacker.Tags, TagVenomous)
			}
		}
		if victim.CurHP < 0 {
			victim.CurHP = 0
		}
		if dmg > preHP {
			ctx.EmitEvent(Event{Type: EvtOverkill, Source: attacker.UID, Target: victim.UID, Value: dmg, Side: defenderSide})
		}
		if dmg != 0 {
			ctx.EmitEvent(Event{Type: EvtMinionDamaged, Source: attacker.UID, Target: victim.UID, Value: dmg, Side: defenderSide})
			ctx.EmitEvent(Event{Type: EvtDamageDealt, Source: attacker.UID, Target: victim.UID, Value: dmg, Side: defenderSide})
		}
	}
}

// deathCleanup scans both boards left to right, removing dead units and
// dispatching minion_died for each, until no more deaths occur.
func (cm *CombatManager) deathCleanup(ctx *EffectContext, attackIdx *[2]int) {
	for {
		changed := false
		for side := 0; side < 2; side++ {
			board := ctx.players[side].Board
			for slot := 0; slot < len(board); slot++ {
				u := board[slot]
				if u.IsAlive() {
					continue
				}
				changed = true
				snap := snapshotUnit(u, side, slot)

				ctx.players[side].Board = append(board[:slot], board[slot+1:]...)
				board = ctx.players[side].Board
				if attackIdx[side] > slot {
					attackIdx[side]--
				}
				if len(board) > 0 {
					attackIdx[side] %= len(board)
				} else {
					attackIdx[side] = 0
				}

				ctx.Reindex()
				RecalculateBoardAuras(board)

				extra := cm.deathTriggers(u, snap, side, slot)
				cm.log(gamelog.NewMinionDiedEvent(ctx.turn, side, u.CardID))
				ProcessEvent(ctx, Event{Type: EvtMinionDied, Source: u.UID, Side: side, Snapshot: &snap}, extra)
				board = ctx.players[side].Board
				slot = -1 // restart scan of this side from the top after mutation
			}
		}
		if !changed {
			return
		}
	}
}

func snapshotUnit(u *Unit, side, slot int) MinionSnapshot {
	return MinionSnapshot{
		UID: u.UID, CardID: u.CardID, Side: side, Slot: slot,
		Atk: u.CurAtk, HP: u.CurHP, MaxHP: u.MaxHP,
		Types: append([]UnitType(nil), u.Types...), Tags: copyTagSet(u.Tags),
		IsGolden: u.IsGolden,
	}
}

// deathTriggers builds the extra_triggers for a minion_died dispatch:
// the dying unit's own death-rattles (at golden stack multiplier), its
// attached-effect triggers, and — if reborn — a synthetic summon.
func (cm *CombatManager) deathTriggers(u *Unit, snap MinionSnapshot, side, slot int) []TriggerInstance {
	var out []TriggerInstance
	defs, stacks := selectDefsForUnit(u)
	for _, d := range defs {
		if d.EventType != EvtMinionDied {
			continue
		}
		out = append(out, TriggerInstance{Def: d, OwnerUID: u.UID, Stacks: stacks})
	}
	for _, effectID := range sortedStringKeys(u.AttachedPerm) {
		out = append(out, attachedDeathInstances(u, effectID, u.AttachedPerm[effectID])...)
	}
	for _, effectID := range sortedStringKeys(u.AttachedTurn) {
		out = append(out, attachedDeathInstances(u, effectID, u.AttachedTurn[effectID])...)
	}
	for _, effectID := range sortedStringKeys(u.AttachedCombat) {
		out = append(out, attachedDeathInstances(u, effectID, u.AttachedCombat[effectID])...)
	}
	if u.HasTag(TagReborn) {
		cardID, golden, slotCopy := u.CardID, u.IsGolden, slot
		out = append(out, TriggerInstance{
			Def: TriggerDef{
				Name:      "reborn",
				EventType: EvtMinionDied,
				Effect: func(ctx *EffectContext, ev Event, ownerUID EntityRef, stacks int) {
					reborn := ctx.Summon(side, cardID, slotCopy, golden)
					if reborn != nil {
						reborn.CurHP = 1
						delete(reborn.Tags, TagReborn)
					}
				},
			},
			OwnerUID: u.UID,
			Stacks:   1,
		})
	}
	return out
}

func attachedDeathInstances(u *Unit, effectID string, count int) []TriggerInstance {
	if count <= 0 {
		return nil
	}
	var out []TriggerInstance
	for _, d := range TriggerRegistry[effectID] {
		if d.EventType != EvtMinionDied {
			continue
		}
		out = append(out, TriggerInstance{Def: d, OwnerUID: u.UID, Stacks: count})
	}
	return out
}

// checkTermination reports whether combat has ended and, if so, the
// outcome and damage magnitude from side 0's perspective.
func (cm *CombatManager) checkTermination(players [2]*Player) (BattleOutcome, int, bool) {
	empty0 := len(players[0].Board) == 0
	empty1 := len(players[1].Board) == 0
	if empty0 && empty1 {
		return Draw, 0, true
	}
	if empty0 {
		return Lose, tierDamage(players[1]), true
	}
	if empty1 {
		return Win, tierDamage(players[0]), true
	}
	return NoEnd, 0, false
}

// tierDamage is the survivor's tier-sum plus their tavern-tier.
func tierDamage(p *Player) int {
	total := p.TavernTier
	for _, u := range p.Board {
		total += u.Tier
	}
	return total
}
