package game

import "fmt"

// Card is the static data record for a card-id (§6 card data schema).
type Card struct {
	ID          string
	Name        string
	Tier        int
	Atk         int
	HP          int
	Types       []UnitType
	Tags        map[Tag]bool
	Token       string // card-id of the battlecry-summoned token, if any
	Deathrattle bool
	IsToken     bool
	Pool        bool // false excludes the card from the draw pool (tokens, rewards)
}

// Spell is the static data record for a spell-id (§6 spell data schema).
type Spell struct {
	ID          string
	Name        string
	Tier        int
	Cost        int
	Effect      string
	Params      map[string]int
	IsTemporary bool
	Pool        bool
}

// CardRegistry and SpellRegistry hold the loaded static databases.
// Populated by LoadBuiltinDB/LoadCardDB/LoadSpellDB (see carddb.go) or,
// in tests, by the testCard/testToken fixtures and RegisterSpell.
var (
	CardRegistry  = map[string]*Card{}
	SpellRegistry = map[string]*Spell{}
)

// TriggerRegistry maps a card-id or effect-id to its default trigger defs.
var TriggerRegistry = map[string][]TriggerDef{}

// GoldenTriggerRegistry overrides TriggerRegistry for golden units of a
// card-id that needs different (not merely doubled) golden behavior.
var GoldenTriggerRegistry = map[string][]TriggerDef{}

// SystemTriggerRegistry holds triggers not owned by any unit, keyed by
// event type. The built-in card set registers none.
var SystemTriggerRegistry = map[EventType][]TriggerDef{}

// LookupCard returns the static data for id, panicking if it is missing:
// a reference to an undefined card-id is a programming error (§7), not a
// domain result.
func LookupCard(id string) *Card {
	c, ok := CardRegistry[id]
	if !ok {
		panic(fmt.Sprintf("game: no card registered for id %q", id))
	}
	return c
}

// LookupSpell returns the static data for id, panicking if missing.
func LookupSpell(id string) *Spell {
	s, ok := SpellRegistry[id]
	if !ok {
		panic(fmt.Sprintf("game: no spell registered for id %q", id))
	}
	return s
}

// RegisterCard adds or replaces a card definition.
func RegisterCard(c *Card) {
	CardRegistry[c.ID] = c
}

// RegisterSpell adds or replaces a spell definition.
func RegisterSpell(s *Spell) {
	SpellRegistry[s.ID] = s
}

// RegisterTriggers appends default trigger defs for a card-id or effect-id.
func RegisterTriggers(id string, defs ...TriggerDef) {
	TriggerRegistry[id] = append(TriggerRegistry[id], defs...)
}

// RegisterGoldenTriggers registers the golden-specific override for a card-id.
func RegisterGoldenTriggers(cardID string, defs ...TriggerDef) {
	GoldenTriggerRegistry[cardID] = append(GoldenTriggerRegistry[cardID], defs...)
}

// RegisterSystemTriggers registers a global trigger for an event type.
func RegisterSystemTriggers(evt EventType, defs ...TriggerDef) {
	SystemTriggerRegistry[evt] = append(SystemTriggerRegistry[evt], defs...)
}
