// Package game implements the event-driven trigger/effect engine and
// combat resolver for a two-player auto-battler.
package game

import "fmt"

// UnitType is a creature type used by type-conditioned synergies.
type UnitType int

const (
	TypeBeast UnitType = iota
	TypeDragon
	TypeDemon
	TypeMurloc
	TypePirate
	TypeElemental
	TypeMech
	TypeUndead
	TypeNaga
	TypeQuilboar
	TypeNeutral
)

func (t UnitType) String() string {
	switch t {
	case TypeBeast:
		return "Beast"
	case TypeDragon:
		return "Dragon"
	case TypeDemon:
		return "Demon"
	case TypeMurloc:
		return "Murloc"
	case TypePirate:
		return "Pirate"
	case TypeElemental:
		return "Elemental"
	case TypeMech:
		return "Mech"
	case TypeUndead:
		return "Undead"
	case TypeNaga:
		return "Naga"
	case TypeQuilboar:
		return "Quilboar"
	case TypeNeutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// Tag is a behavior flag on a unit.
type Tag int

const (
	TagImmediateAttack Tag = iota
	TagTaunt
	TagDivineShield
	TagWindfury
	TagPoisonous
	TagReborn
	TagVenomous
	TagCleave
	TagStealth
	TagMagnetic
)

func (t Tag) String() string {
	switch t {
	case TagImmediateAttack:
		return "ImmediateAttack"
	case TagTaunt:
		return "Taunt"
	case TagDivineShield:
		return "DivineShield"
	case TagWindfury:
		return "Windfury"
	case TagPoisonous:
		return "Poisonous"
	case TagReborn:
		return "Reborn"
	case TagVenomous:
		return "Venomous"
	case TagCleave:
		return "Cleave"
	case TagStealth:
		return "Stealth"
	case TagMagnetic:
		return "Magnetic"
	default:
		return "Unknown"
	}
}

// BattleOutcome is the result of resolving one combat.
type BattleOutcome int

const (
	NoEnd BattleOutcome = iota
	Draw
	Win
	Lose
)

func (o BattleOutcome) String() string {
	switch o {
	case NoEnd:
		return "NoEnd"
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// MechanicType identifies a per-player counter pair (e.g. blood gem bonus).
type MechanicType int

const (
	MechanicBloodGem MechanicType = iota
	MechanicElementalBuff
)

// Zone identifies where an entity lives for a PosRef.
type Zone int

const (
	ZoneBoard Zone = iota
	ZoneHand
	ZoneShop
	ZoneHero
)

func (z Zone) String() string {
	switch z {
	case ZoneBoard:
		return "board"
	case ZoneHand:
		return "hand"
	case ZoneShop:
		return "shop"
	case ZoneHero:
		return "hero"
	default:
		return "unknown"
	}
}

// EventType enumerates the events the event manager dispatches.
type EventType int

const (
	EvtMinionPlayed EventType = iota
	EvtMinionBought
	EvtMinionSold
	EvtMinionSummoned
	EvtMinionDied
	EvtMinionDamaged
	EvtDamageDealt
	EvtAttackDeclared
	EvtAfterAttack
	EvtStartOfCombat
	EvtEndOfCombat
	EvtStartOfTurn
	EvtEndOfTurn
	EvtSpellCast
	EvtMinionAddedToShop
	EvtDivineShieldLost
	EvtOverkill
)

func (e EventType) String() string {
	names := [...]string{
		"minion_played", "minion_bought", "minion_sold", "minion_summoned",
		"minion_died", "minion_damaged", "damage_dealt", "attack_declared",
		"after_attack", "start_of_combat", "end_of_combat", "start_of_turn",
		"end_of_turn", "spell_cast", "minion_added_to_shop", "divine_shield_lost",
		"overkill",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return "unknown"
}

// ActionKind enumerates the external action ABI (§6).
type ActionKind int

const (
	ActionEndTurn ActionKind = iota
	ActionRoll
	ActionBuy
	ActionSell
	ActionPlay
	ActionSwap
	ActionFreeze
	ActionUpgrade
	ActionDiscoverChoice
)

// EntityRef is a stable reference to a unit, independent of its slot.
type EntityRef string

// PosRef locates an entity at a point in time; it must be re-resolved
// via the uid index after any mutation that can move or remove entities.
type PosRef struct {
	Side int
	Zone Zone
	Slot int
}

func (p PosRef) String() string {
	return fmt.Sprintf("%s:%d[%d]", p.Zone, p.Side, p.Slot)
}

// MinionSnapshot captures a unit's last known identity and location,
// taken when it leaves the board, so death-triggered effects can still
// read what it was and where it stood.
type MinionSnapshot struct {
	UID      EntityRef
	CardID   string
	Side     int
	Slot     int
	Atk      int
	HP       int
	MaxHP    int
	Types    []UnitType
	Tags     map[Tag]bool
	IsGolden bool
}

// Event is a single occurrence dispatched through the event manager.
type Event struct {
	Type      EventType
	Source    EntityRef
	Target    EntityRef
	SourcePos *PosRef
	TargetPos *PosRef
	Value     int
	Snapshot  *MinionSnapshot
	Side      int // the event's "active" side, used for side_priority ordering
}

// EffectFn is the closure signature for a trigger's effect body.
type EffectFn func(ctx *EffectContext, ev Event, ownerUID EntityRef, stacks int)

// ConditionFn decides whether a TriggerDef fires for a given event.
type ConditionFn func(ctx *EffectContext, ev Event, ownerUID EntityRef) bool

// TriggerDef is a static, registry-resident trigger definition.
type TriggerDef struct {
	Name      string
	EventType EventType
	Condition ConditionFn // nil means "always fires"
	Effect    EffectFn
	Priority  int
}

// TriggerInstance binds a TriggerDef to the unit owning it and the
// collected stack count for this firing.
type TriggerInstance struct {
	Def      TriggerDef
	OwnerUID EntityRef
	Stacks   int
	// collection-time bookkeeping used only for ordering (§4.5)
	group        int
	sidePriority int
	slot         int
}
