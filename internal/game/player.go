package game

// StoreItem is a shop slot: either a unit or a spell, plus a frozen flag.
type StoreItem struct {
	Unit    *Unit
	SpellID string // non-empty if this slot holds a spell
	Frozen  bool
}

func (s *StoreItem) isSpell() bool { return s.SpellID != "" }

// HandCard is a hand slot: a uid plus either a unit or a spell.
type HandCard struct {
	UID     EntityRef
	Unit    *Unit
	SpellID string
	// Temporary hand cards (e.g. a just-drawn surf-spellcraft-style
	// one-shot) are removed at end_turn if unplayed.
	Temporary bool
	// RewardTier records the discovery tier for a triplet-reward spell
	// (card-id S999), set when the reward is granted (§4.7 triplet rule).
	RewardTier int
}

func (h *HandCard) isSpell() bool { return h.SpellID != "" }

// DiscoveryState tracks an in-progress discovery choice.
type DiscoveryState struct {
	Active    bool
	Options   []string // card-ids offered
	ExactTier bool
	Tier      int
	// Source records what started the discovery (e.g. "triplet_reward").
	// DiscoverChoice does not read it: the chosen card always goes to
	// hand as a unit.
	Source string
}

// Player holds one side's full recruit-phase and combat state.
type Player struct {
	UID    int // 0 or 1
	Health int

	Board []*Unit
	Hand  []*HandCard
	Store []*StoreItem

	Gold          int
	GoldCarryover int
	TavernTier    int
	UpCost        int
	SpellDiscount int

	Mechanic map[MechanicType][2]int

	Discovery DiscoveryState
}

// NewPlayer creates a fresh player at game start.
func NewPlayer(uid int) *Player {
	return &Player{
		UID:        uid,
		Health:     40,
		TavernTier: 1,
		UpCost:     TierUpgradeCosts[2],
		Mechanic:   map[MechanicType][2]int{},
	}
}

// FindUnit locates a unit by uid anywhere on this player's board.
func (p *Player) FindUnit(uid EntityRef) (*Unit, int) {
	for i, u := range p.Board {
		if u.UID == uid {
			return u, i
		}
	}
	return nil, -1
}
