package game

// This file wires concrete card abilities into TriggerRegistry and
// GoldenTriggerRegistry, and the spell-effect dispatch used by cast
// spells. Each registration is grounded in a corresponding entry of the
// reference engine's effects.py (battlecry/synergy/deathrattle
// functions registered into TRIGGER_REGISTRY).

func selfPlayed(ev Event, owner EntityRef) bool {
	return ev.Source == owner
}

func selfDied(ev Event, owner EntityRef) bool {
	return ev.Source == owner
}

func selfSold(ev Event, owner EntityRef) bool {
	return ev.Source == owner
}

func init() {
	registerAlleycat()
	registerShellCollector()
	registerImprisoner()
	registerScallywag()
	registerWrathWeaver()
	registerSwampstriker()
	registerMintedCorsair()
	registerSpawnOfNzoth()
	registerKaboomBot()
	registerDeflectOBot()
	registerCrabDeathrattle()
}

// Alleycat: battlecry summons a 1/1 Tabbycat token to its immediate
// right. Golden alleycat summons one golden tabbycat instead of firing
// twice (effects.py: make_avenge_trigger-style golden override).
func registerAlleycat() {
	RegisterTriggers("102", TriggerDef{
		Name:      "alleycat battlecry",
		EventType: EvtMinionPlayed,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfPlayed(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			summonBeside(ctx, ev, owner, "102t", false)
		},
	})
	RegisterGoldenTriggers("102", TriggerDef{
		Name:      "alleycat battlecry (golden)",
		EventType: EvtMinionPlayed,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfPlayed(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			summonBeside(ctx, ev, owner, "102t", true)
		},
	})
}

func summonBeside(ctx *EffectContext, ev Event, owner EntityRef, tokenID string, golden bool) {
	pos, ok := ctx.ResolvePos(owner)
	if !ok {
		return
	}
	ctx.Summon(pos.Side, tokenID, pos.Slot+1, golden)
}

// Shell Collector: battlecry gains 1 gold.
func registerShellCollector() {
	RegisterTriggers("107", TriggerDef{
		Name:      "shell collector battlecry",
		EventType: EvtMinionPlayed,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfPlayed(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.GainGold(ev.Side, 1)
		},
	})
}

// Imprisoner: deathrattle summons a 1/1 Imp at its last slot.
func registerImprisoner() {
	RegisterTriggers("108", TriggerDef{
		Name:      "imprisoner deathrattle",
		EventType: EvtMinionDied,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfDied(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if ev.Snapshot != nil {
				ctx.Summon(ev.Snapshot.Side, "108t", ev.Snapshot.Slot, false)
			}
		},
	})
}

// Scallywag: deathrattle summons a 1/1 Pirate token with immediate-attack.
func registerScallywag() {
	RegisterTriggers("103", TriggerDef{
		Name:      "scallywag deathrattle",
		EventType: EvtMinionDied,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfDied(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if ev.Snapshot != nil {
				ctx.Summon(ev.Snapshot.Side, "103t", ev.Snapshot.Slot, false)
			}
		},
	})
}

// Wrath Weaver: whenever another demon is played, this unit gains +2/+1
// and its controller's hero takes 1 damage.
func registerWrathWeaver() {
	RegisterTriggers("101", TriggerDef{
		Name:      "wrath weaver synergy",
		EventType: EvtMinionPlayed,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool {
			if ev.Source == owner {
				return false
			}
			pos, ok := ctx.ResolvePos(owner)
			if !ok || pos.Side != ev.Side {
				return false
			}
			played := ctx.ResolveUnit(ev.Source)
			return played != nil && played.hasType(TypeDemon)
		},
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.BuffPerm(owner, 2, 1)
			ctx.DamageHero(ev.Side, 1)
		},
	})
}

// Swampstriker: whenever another murloc is played, every other
// Swampstriker gains +1 attack.
func registerSwampstriker() {
	RegisterTriggers("104", TriggerDef{
		Name:      "swampstriker synergy",
		EventType: EvtMinionPlayed,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool {
			if ev.Source == owner {
				return false
			}
			played := ctx.ResolveUnit(ev.Source)
			return played != nil && played.hasType(TypeMurloc)
		},
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.BuffPerm(owner, 1, 0)
		},
	})
}

// Minted Corsair: sell effect adds a Tavern Coin to hand.
func registerMintedCorsair() {
	RegisterTriggers("109", TriggerDef{
		Name:      "minted corsair sell",
		EventType: EvtMinionSold,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfSold(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.AddSpellToHand(ev.Side, "S001")
		},
	})
}

// Spawn of N'Zoth: deathrattle gives every other friendly minion +1/+1
// for the remainder of the current combat.
func registerSpawnOfNzoth() {
	RegisterTriggers("206", TriggerDef{
		Name:      "spawn of n'zoth deathrattle",
		EventType: EvtMinionDied,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfDied(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if ev.Snapshot == nil {
				return
			}
			for _, u := range ctx.IterBoardUnits(ev.Snapshot.Side) {
				ctx.BuffCombat(u.UID, 1, 1)
			}
		},
	})
}

// Kaboom Bot: deathrattle deals 4 damage to a random enemy minion.
func registerKaboomBot() {
	RegisterTriggers("207", TriggerDef{
		Name:      "kaboom bot deathrattle",
		EventType: EvtMinionDied,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfDied(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if ev.Snapshot == nil {
				return
			}
			targets := ctx.IterBoardUnits(1 - ev.Snapshot.Side)
			if len(targets) == 0 {
				return
			}
			t := targets[ctx.RNG().Intn(len(targets))]
			ctx.DamageUnit(t.UID, 4)
		},
	})
}

// Deflect-o-Bot: whenever a friendly Mech is summoned, gains +2 Atk for
// the current combat and restores its own Divine Shield.
func registerDeflectOBot() {
	RegisterTriggers("301", TriggerDef{
		Name:      "deflect-o-bot mech synergy",
		EventType: EvtMinionSummoned,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool {
			if ev.Source == owner {
				return false
			}
			pos, ok := ctx.ResolvePos(owner)
			if !ok || pos.Side != ev.Side {
				return false
			}
			summoned := ctx.ResolveUnit(ev.Source)
			return summoned != nil && summoned.hasType(TypeMech)
		},
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.BuffCombat(owner, 2, 0)
			if u := ctx.ResolveUnit(owner); u != nil {
				u.Tags[TagDivineShield] = true
			}
		},
	})
}

// crab_deathrattle is the attached effect granted by Surf Spellcraft
// (spell S007): summons a 3/2 Crab token at the dying unit's last slot.
func registerCrabDeathrattle() {
	RegisterTriggers("crab_deathrattle", TriggerDef{
		Name:      "surf spellcraft crab deathrattle",
		EventType: EvtMinionDied,
		Condition: func(ctx *EffectContext, ev Event, owner EntityRef) bool { return selfDied(ev, owner) },
		Effect: func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if ev.Snapshot != nil {
				ctx.Summon(ev.Snapshot.Side, "001t", ev.Snapshot.Slot, false)
			}
		},
	})
}

// spellEffectForCard builds the one-shot effect fired when a spell is
// cast from hand (§4.7 play for spells). rewardTier is only meaningful
// for the S999 triplet-reward spell.
func spellEffectForCard(spell *Spell, rewardTier int) EffectFn {
	switch spell.Effect {
	case "GAIN_GOLD":
		gold := spell.Params["gold"]
		return func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			ctx.GainGold(ev.Side, gold)
		}
	case "BUFF_MINION":
		atk, hp := spell.Params["atk"], spell.Params["hp"]
		return func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if owner != "" {
				ctx.BuffPerm(owner, atk, hp)
			}
		}
	case "BUFF_MINION_TAUNT":
		atk, hp := spell.Params["atk"], spell.Params["hp"]
		return func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if owner == "" {
				return
			}
			ctx.BuffPerm(owner, atk, hp)
			if u := ctx.ResolveUnit(owner); u != nil {
				u.Tags[TagTaunt] = true
			}
		}
	case "ATTACH_CRAB_DR":
		count := spell.Params["count"]
		return func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			if owner != "" {
				ctx.AttachEffectTurn(owner, "crab_deathrattle", count)
			}
		}
	case "DISCOVER_TIER_UP":
		return func(ctx *EffectContext, ev Event, owner EntityRef, stacks int) {
			p := ctx.players[ev.Side]
			tier := rewardTier
			if tier == 0 {
				tier = p.TavernTier
			}
			options := ctx.pool.DrawDiscovery(ctx.rng, 3, tier, true, nil)
			p.Discovery = DiscoveryState{Active: true, Options: options, ExactTier: true, Tier: tier, Source: "triplet_reward"}
		}
	default:
		panic("game: no spell effect registered for " + spell.Effect)
	}
}
