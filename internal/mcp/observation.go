package mcp

import (
	"sort"

	"github.com/Tmi-creator/hs-autobattler/internal/game"
)

// UnitView is the per-slot encoding for a unit occupying a board, hand,
// or shop slot (§6 Observation ABI).
type UnitView struct {
	CardID      string   `json:"card_id"`
	Name        string   `json:"name"`
	Atk         int      `json:"atk"`
	HP          int      `json:"hp"`
	MaxHP       int      `json:"max_hp"`
	Tier        int      `json:"tier"`
	Types       []string `json:"types,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsGolden    bool     `json:"is_golden"`
	IsToken     bool     `json:"is_token"`
	IsFrozen    bool     `json:"is_frozen,omitempty"`
	Deathrattle bool     `json:"has_deathrattle,omitempty"`
	Battlecry   bool     `json:"has_battlecry,omitempty"`
	EndOfTurn   bool     `json:"has_end_of_turn,omitempty"`
	StartCombat bool     `json:"has_start_of_combat,omitempty"`
	SellEffect  bool     `json:"has_sell_effect,omitempty"`
	Synergy     bool     `json:"has_synergy,omitempty"`
}

// SpellSlotView is the per-slot encoding for a spell occupying a hand
// or shop slot.
type SpellSlotView struct {
	SpellID string `json:"spell_id"`
	Name    string `json:"name"`
	Tier    int    `json:"tier"`
	Cost    int    `json:"cost"`
}

// SlotView is one hand or shop slot: exactly one of Unit/Spell is set.
type SlotView struct {
	Unit   *UnitView      `json:"unit,omitempty"`
	Spell  *SpellSlotView `json:"spell,omitempty"`
	Frozen bool           `json:"frozen,omitempty"`
}

// PlayerView is the observable state of one player, from a perspective
// that may hide the opponent's hand (enemy features are public-only).
type PlayerView struct {
	Health     int        `json:"health"`
	Gold       int        `json:"gold"`
	TavernTier int        `json:"tavern_tier"`
	UpCost     int        `json:"up_cost"`
	Board      []UnitView `json:"board"`
	Hand       []SlotView `json:"hand,omitempty"`
	Shop       []SlotView `json:"shop,omitempty"`
}

// DiscoveryView describes an in-progress discovery choice.
type DiscoveryView struct {
	Active  bool       `json:"active"`
	Options []UnitView `json:"options,omitempty"`
}

// Observation is the full flat observation returned to an external
// agent for one player's perspective (§6 Observation ABI).
type Observation struct {
	Turn      int           `json:"turn"`
	Done      bool          `json:"done"`
	Winner    int           `json:"winner"`
	Self      PlayerView    `json:"self"`
	Enemy     PlayerView    `json:"enemy"`
	Discovery DiscoveryView `json:"discovery"`
}

func hasEffectClass(cardID string, evt game.EventType) bool {
	for _, def := range game.TriggerRegistry[cardID] {
		if def.EventType == evt {
			return true
		}
	}
	return false
}

func hasSynergy(cardID string) bool {
	for _, def := range game.TriggerRegistry[cardID] {
		if def.EventType == game.EvtMinionPlayed && def.Condition != nil {
			return true
		}
	}
	return false
}

func buildUnitView(u *game.Unit) UnitView {
	card := game.CardRegistry[u.CardID]
	v := UnitView{
		CardID:      u.CardID,
		Atk:         u.CurAtk,
		HP:          u.CurHP,
		MaxHP:       u.MaxHP,
		Tier:        u.Tier,
		IsGolden:    u.IsGolden,
		Deathrattle: hasEffectClass(u.CardID, game.EvtMinionDied),
		Battlecry:   hasEffectClass(u.CardID, game.EvtMinionPlayed) && !hasSynergy(u.CardID),
		EndOfTurn:   hasEffectClass(u.CardID, game.EvtEndOfTurn),
		StartCombat: hasEffectClass(u.CardID, game.EvtStartOfCombat),
		SellEffect:  hasEffectClass(u.CardID, game.EvtMinionSold),
		Synergy:     hasSynergy(u.CardID),
	}
	if card != nil {
		v.Name = card.Name
		v.IsToken = card.IsToken
	}
	for _, t := range u.Types {
		v.Types = append(v.Types, t.String())
	}
	var tagNames []string
	for tag, on := range u.Tags {
		if on {
			tagNames = append(tagNames, tag.String())
		}
	}
	sort.Strings(tagNames)
	v.Tags = tagNames
	return v
}

func buildSpellSlot(spellID string) *SpellSlotView {
	spell := game.SpellRegistry[spellID]
	if spell == nil {
		return &SpellSlotView{SpellID: spellID}
	}
	return &SpellSlotView{SpellID: spellID, Name: spell.Name, Tier: spell.Tier, Cost: spell.Cost}
}

func buildPlayerView(p *game.Player, includeHand bool) PlayerView {
	pv := PlayerView{
		Health:     p.Health,
		Gold:       p.Gold,
		TavernTier: p.TavernTier,
		UpCost:     p.UpCost,
	}
	for _, u := range p.Board {
		pv.Board = append(pv.Board, buildUnitView(u))
	}
	if includeHand {
		for _, h := range p.Hand {
			if h.SpellID != "" {
				pv.Hand = append(pv.Hand, SlotView{Spell: buildSpellSlot(h.SpellID)})
			} else if h.Unit != nil {
				v := buildUnitView(h.Unit)
				pv.Hand = append(pv.Hand, SlotView{Unit: &v})
			}
		}
	}
	for _, s := range p.Store {
		if s.Unit != nil {
			v := buildUnitView(s.Unit)
			pv.Shop = append(pv.Shop, SlotView{Unit: &v, Frozen: s.Frozen})
		} else if s.SpellID != "" {
			pv.Shop = append(pv.Shop, SlotView{Spell: buildSpellSlot(s.SpellID), Frozen: s.Frozen})
		}
	}
	return pv
}

// BuildObservation assembles the observation for playerIndex's perspective.
func BuildObservation(g *game.Game, playerIndex int) Observation {
	self := g.Players[playerIndex]
	enemy := g.Players[1-playerIndex]

	obs := Observation{
		Turn:   g.Turn,
		Done:   g.Done,
		Winner: g.Winner,
		Self:   buildPlayerView(self, true),
		Enemy:  buildPlayerView(enemy, false),
	}
	if self.Discovery.Active {
		obs.Discovery.Active = true
		for _, cardID := range self.Discovery.Options {
			if card := game.CardRegistry[cardID]; card != nil {
				u := game.NewUnit(card, playerIndex)
				obs.Discovery.Options = append(obs.Discovery.Options, buildUnitView(u))
			}
		}
	}
	return obs
}
