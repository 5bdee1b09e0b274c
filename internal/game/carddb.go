package game

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/carddb.yaml data/spelldb.yaml
var builtinDB embed.FS

// cardEntry/spellEntry mirror the §6 card/spell data schema as read from
// YAML, generalized from the teacher's deck.go DeckEntry/CardEntry.
type cardEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Tier        int            `yaml:"tier"`
	Atk         int            `yaml:"atk"`
	HP          int            `yaml:"hp"`
	Types       []string       `yaml:"types"`
	Tags        []string       `yaml:"tags"`
	Token       string         `yaml:"token"`
	Deathrattle bool           `yaml:"deathrattle"`
	IsToken     bool           `yaml:"is_token"`
	Pool        bool           `yaml:"pool"`
}

type cardDBFile struct {
	Cards []cardEntry `yaml:"cards"`
}

type spellEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Tier        int            `yaml:"tier"`
	Cost        int            `yaml:"cost"`
	Effect      string         `yaml:"effect"`
	Params      map[string]int `yaml:"params"`
	IsTemporary bool           `yaml:"is_temporary"`
	Pool        bool           `yaml:"pool"`
}

type spellDBFile struct {
	Spells []spellEntry `yaml:"spells"`
}

var unitTypeByName = map[string]UnitType{
	"Beast": TypeBeast, "Dragon": TypeDragon, "Demon": TypeDemon,
	"Murloc": TypeMurloc, "Pirate": TypePirate, "Elemental": TypeElemental,
	"Mech": TypeMech, "Undead": TypeUndead, "Naga": TypeNaga,
	"Quilboar": TypeQuilboar, "Neutral": TypeNeutral,
}

var tagByName = map[string]Tag{
	"ImmediateAttack": TagImmediateAttack, "Taunt": TagTaunt,
	"DivineShield": TagDivineShield, "Windfury": TagWindfury,
	"Poisonous": TagPoisonous, "Reborn": TagReborn, "Venomous": TagVenomous,
	"Cleave": TagCleave, "Stealth": TagStealth, "Magnetic": TagMagnetic,
}

// LoadCardDB parses a card database YAML file and registers every entry.
// Malformed entries (unknown type/tag names, missing id) are load-time
// errors — a config boundary per §7 — not panics.
func LoadCardDB(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load card db: %w", err)
	}
	return loadCardDBBytes(data)
}

func loadCardDBBytes(data []byte) error {
	var file cardDBFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse card db: %w", err)
	}
	for _, e := range file.Cards {
		if e.ID == "" {
			return fmt.Errorf("parse card db: entry with empty id")
		}
		types := make([]UnitType, 0, len(e.Types))
		for _, tn := range e.Types {
			ut, ok := unitTypeByName[tn]
			if !ok {
				return fmt.Errorf("parse card db: card %q has unknown type %q", e.ID, tn)
			}
			types = append(types, ut)
		}
		tags := map[Tag]bool{}
		for _, tn := range e.Tags {
			tg, ok := tagByName[tn]
			if !ok {
				return fmt.Errorf("parse card db: card %q has unknown tag %q", e.ID, tn)
			}
			tags[tg] = true
		}
		RegisterCard(&Card{
			ID:          e.ID,
			Name:        e.Name,
			Tier:        e.Tier,
			Atk:         e.Atk,
			HP:          e.HP,
			Types:       types,
			Tags:        tags,
			Token:       e.Token,
			Deathrattle: e.Deathrattle,
			IsToken:     e.IsToken,
			Pool:        e.Pool,
		})
	}
	return nil
}

// LoadSpellDB parses a spell database YAML file and registers every entry.
func LoadSpellDB(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load spell db: %w", err)
	}
	return loadSpellDBBytes(data)
}

func loadSpellDBBytes(data []byte) error {
	var file spellDBFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse spell db: %w", err)
	}
	for _, e := range file.Spells {
		if e.ID == "" {
			return fmt.Errorf("parse spell db: entry with empty id")
		}
		RegisterSpell(&Spell{
			ID:          e.ID,
			Name:        e.Name,
			Tier:        e.Tier,
			Cost:        e.Cost,
			Effect:      e.Effect,
			Params:      e.Params,
			IsTemporary: e.IsTemporary,
			Pool:        e.Pool,
		})
	}
	return nil
}

// LoadBuiltinDB registers the embedded default card and spell databases.
// NewGame calls it each time a Game is constructed; re-registering
// replaces the entries with identical ones.
func LoadBuiltinDB() error {
	cardData, err := builtinDB.ReadFile("data/carddb.yaml")
	if err != nil {
		return err
	}
	if err := loadCardDBBytes(cardData); err != nil {
		return err
	}
	spellData, err := builtinDB.ReadFile("data/spelldb.yaml")
	if err != nil {
		return err
	}
	return loadSpellDBBytes(spellData)
}
