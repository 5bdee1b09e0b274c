package game

import "github.com/google/uuid"

// Unit is a minion instance, either on a board, in a shop, or in hand.
type Unit struct {
	UID      EntityRef
	CardID   string
	Side     int
	Tier     int
	Types    []UnitType

	BaseAtk int
	BaseHP  int

	PermAtk, PermHP     int
	TurnAtk, TurnHP     int
	CombatAtk, CombatHP int
	AuraAtk, AuraHP     int

	MaxAtk, MaxHP int
	CurAtk, CurHP int

	Tags     map[Tag]bool
	IsGolden bool
	IsFrozen bool

	// attached-effect multisets: effect-id -> stack count
	AttachedPerm   map[string]int
	AttachedTurn   map[string]int
	AttachedCombat map[string]int

	AvengeCounter int

	// absorbed pool copies (magnetized components): card-id -> count
	Absorbed map[string]int
}

// NewUnit constructs a fresh unit from card data at full health.
func NewUnit(card *Card, side int) *Unit {
	u := &Unit{
		UID:            EntityRef(uuid.NewString()),
		CardID:         card.ID,
		Side:           side,
		Tier:           card.Tier,
		Types:          append([]UnitType(nil), card.Types...),
		BaseAtk:        card.Atk,
		BaseHP:         card.HP,
		Tags:           copyTagSet(card.Tags),
		AttachedPerm:   map[string]int{},
		AttachedTurn:   map[string]int{},
		AttachedCombat: map[string]int{},
		Absorbed:       map[string]int{},
	}
	u.Recompute()
	u.CurHP = u.MaxHP
	return u
}

// newUID mints a fresh stable entity identity.
func newUID() EntityRef {
	return EntityRef(uuid.NewString())
}

func copyTagSet(src map[Tag]bool) map[Tag]bool {
	out := make(map[Tag]bool, len(src))
	for k, v := range src {
		if v {
			out[k] = true
		}
	}
	return out
}

// HasTag reports whether the unit currently carries tag t.
func (u *Unit) HasTag(t Tag) bool {
	return u.Tags[t]
}

func (u *Unit) hasType(t UnitType) bool {
	for _, ut := range u.Types {
		if ut == t {
			return true
		}
	}
	return false
}

// Recompute re-derives max_atk/max_hp from the five layers, preserves
// the missing-HP delta across the change, and sets cur_atk = max_atk.
func (u *Unit) Recompute() {
	baseAtk, baseHP := u.BaseAtk, u.BaseHP
	if u.IsGolden {
		baseAtk *= 2
		baseHP *= 2
	}
	oldMaxHP := u.MaxHP
	missing := oldMaxHP - u.CurHP
	if oldMaxHP == 0 {
		missing = 0 // first recompute: nothing to preserve
	}

	u.MaxAtk = baseAtk + u.PermAtk + u.TurnAtk + u.CombatAtk + u.AuraAtk
	u.MaxHP = baseHP + u.PermHP + u.TurnHP + u.CombatHP + u.AuraHP
	if u.MaxAtk < 0 {
		u.MaxAtk = 0
	}
	if u.MaxHP < 1 {
		u.MaxHP = 1
	}

	newCurHP := u.MaxHP - missing
	if newCurHP < 0 {
		newCurHP = 0
	}
	if newCurHP > u.MaxHP {
		newCurHP = u.MaxHP
	}
	u.CurHP = newCurHP
	u.CurAtk = u.MaxAtk
}

// ResetTurnLayer clears the per-turn layer (end/start of turn) and recomputes.
func (u *Unit) ResetTurnLayer() {
	u.TurnAtk, u.TurnHP = 0, 0
	u.AttachedTurn = map[string]int{}
	u.Recompute()
}

// ResetCombatLayer clears the per-combat layer (end of combat) and recomputes.
func (u *Unit) ResetCombatLayer() {
	u.CombatAtk, u.CombatHP = 0, 0
	u.AttachedCombat = map[string]int{}
	u.Recompute()
}

// ResetAuraLayer clears the aura layer before aura recomputation.
func (u *Unit) ResetAuraLayer() {
	u.AuraAtk, u.AuraHP = 0, 0
}

// IsAlive reports whether the unit still has positive current HP.
func (u *Unit) IsAlive() bool {
	return u.CurHP > 0
}

// CombatCopy produces a deep clone with the combat/aura layers zeroed,
// attached-combat emptied, the avenge counter reset, and HP fully
// restored, isolating battle damage from the recruit-phase board.
func (u *Unit) CombatCopy() *Unit {
	clone := &Unit{
		UID:            u.UID,
		CardID:         u.CardID,
		Side:           u.Side,
		Tier:           u.Tier,
		Types:          append([]UnitType(nil), u.Types...),
		BaseAtk:        u.BaseAtk,
		BaseHP:         u.BaseHP,
		PermAtk:        u.PermAtk,
		PermHP:         u.PermHP,
		TurnAtk:        u.TurnAtk,
		TurnHP:         u.TurnHP,
		Tags:           copyTagSet(u.Tags),
		IsGolden:       u.IsGolden,
		IsFrozen:       false,
		AttachedPerm:   copyIntMap(u.AttachedPerm),
		AttachedTurn:   copyIntMap(u.AttachedTurn),
		AttachedCombat: map[string]int{},
		Absorbed:       copyIntMap(u.Absorbed),
	}
	clone.Recompute()
	clone.CurHP = clone.MaxHP
	return clone
}

func copyIntMap(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
