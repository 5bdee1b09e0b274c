package game

import (
	"fmt"
	"math/rand"

	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// Game orchestrates turn phasing and the two-player step ABI (C9). It
// owns both players, the shared card/spell pools, the single seeded
// random stream, and the recruit/combat managers that mutate them.
type Game struct {
	Players [2]*Player
	Turn    int
	Done    bool
	Winner  int // -1 if draw or not yet decided

	ready [2]bool

	pool    *CardPool
	spells  *SpellPool
	rng     *rand.Rand
	logger  gamelog.EventLogger
	tavern  *TavernManager
	combat  *CombatManager

	actionsThisTurn [2]int
	maxActionsTurn  int
}

// NewGame builds a fresh two-player game seeded by seed, using the
// built-in card/spell database.
func NewGame(seed int64, logger gamelog.EventLogger) *Game {
	if err := LoadBuiltinDB(); err != nil {
		panic("game: failed to load builtin card/spell database: " + err.Error())
	}
	rng := rand.New(rand.NewSource(seed))
	pool := NewCardPool()
	spells := NewSpellPool()

	g := &Game{
		Players:        [2]*Player{NewPlayer(0), NewPlayer(1)},
		Turn:           0,
		Winner:         -1,
		pool:           pool,
		spells:         spells,
		rng:            rng,
		logger:         logger,
		maxActionsTurn: 64,
	}
	g.tavern = NewTavernManager(pool, spells, rng, logger)
	g.combat = NewCombatManager(rng, logger)

	g.Turn = 1
	for side := range g.Players {
		g.tavern.StartTurn(g.Players, side, g.Turn)
	}
	return g
}

// Step accepts one external action for playerIndex and returns whether
// the game has ended, plus a human-readable info string describing the
// outcome (empty on success).
func (g *Game) Step(playerIndex int, kind ActionKind, kwargs map[string]int) (done bool, info string) {
	if g.Done {
		return true, "game already over"
	}
	p := g.Players[playerIndex]

	if p.Discovery.Active && kind != ActionDiscoverChoice {
		return false, "player is mid-discovery"
	}
	if g.ready[playerIndex] && kind != ActionEndTurn {
		return false, "player already ready"
	}

	g.actionsThisTurn[playerIndex]++
	if g.actionsThisTurn[playerIndex] > g.maxActionsTurn {
		kind = ActionEndTurn
	}

	ok, reason := g.dispatch(playerIndex, kind, kwargs)
	if !ok {
		return false, reason
	}

	if kind == ActionEndTurn {
		g.ready[playerIndex] = true
	}

	if g.ready[0] && g.ready[1] {
		g.resolveCombatAndAdvance()
	}
	return g.Done, ""
}

func (g *Game) dispatch(side int, kind ActionKind, kwargs map[string]int) (bool, string) {
	p := g.Players[side]
	switch kind {
	case ActionEndTurn:
		g.tavern.EndTurn(p)
		return true, ""
	case ActionRoll:
		return g.tavern.Roll(p)
	case ActionBuy:
		return g.tavern.Buy(g.Players, side, kwargs["index"], g.Turn)
	case ActionSell:
		return g.tavern.Sell(g.Players, side, kwargs["index"], g.Turn)
	case ActionPlay:
		insert, hasInsert := kwargs["insert_index"]
		if !hasInsert {
			insert = -1
		}
		target, hasTarget := kwargs["target_index"]
		if !hasTarget {
			target = -1
		}
		return g.tavern.Play(g.Players, side, kwargs["hand_index"], insert, target, g.Turn)
	case ActionSwap:
		return g.tavern.Swap(p, kwargs["a"], kwargs["b"])
	case ActionFreeze:
		return g.tavern.Freeze(p)
	case ActionUpgrade:
		return g.tavern.Upgrade(p)
	case ActionDiscoverChoice:
		return g.tavern.DiscoverChoice(p, kwargs["index"])
	default:
		return false, "unknown action kind"
	}
}

// resolveCombatAndAdvance runs C7, applies the resulting health damage,
// checks for game-over, and otherwise increments the turn and kicks off
// start_turn for both players.
func (g *Game) resolveCombatAndAdvance() {
	outcome, dmg := g.combat.Resolve(g.Players, g.Turn)

	switch outcome {
	case Win:
		g.Players[1].Health -= dmg
	case Lose:
		g.Players[0].Health -= dmg
	case Draw, NoEnd:
		// no hero damage on a draw or unresolved combat
	}

	g.ready[0], g.ready[1] = false, false
	g.actionsThisTurn[0], g.actionsThisTurn[1] = 0, 0

	if g.Players[0].Health <= 0 || g.Players[1].Health <= 0 {
		g.Done = true
		switch {
		case g.Players[0].Health <= 0 && g.Players[1].Health <= 0:
			g.Winner = -1
		case g.Players[0].Health <= 0:
			g.Winner = 1
		default:
			g.Winner = 0
		}
		return
	}

	g.Turn++
	for side := range g.Players {
		g.tavern.StartTurn(g.Players, side, g.Turn)
	}
}

// ActionMask reports, for each action kind in the §6 ABI, whether the
// game state lets playerIndex submit it: nothing once the game is over,
// only discover_choice mid-discovery, only end_turn once ready, and
// every kind otherwise. Per-action preconditions (gold, indices, hand
// and board size, tavern tier) are not checked, so Step may still
// reject an action the mask allows.
func (g *Game) ActionMask(playerIndex int) map[ActionKind]bool {
	p := g.Players[playerIndex]
	mask := map[ActionKind]bool{}
	for _, k := range []ActionKind{
		ActionEndTurn, ActionRoll, ActionBuy, ActionSell, ActionPlay,
		ActionSwap, ActionFreeze, ActionUpgrade, ActionDiscoverChoice,
	} {
		switch {
		case g.Done:
			mask[k] = false
		case p.Discovery.Active:
			mask[k] = k == ActionDiscoverChoice
		case g.ready[playerIndex]:
			mask[k] = k == ActionEndTurn
		default:
			mask[k] = true
		}
	}
	return mask
}

// Describe renders a short human-readable summary, used by the CLI.
func (g *Game) Describe() string {
	if g.Done {
		return fmt.Sprintf("game over at turn %d, winner=%d", g.Turn, g.Winner)
	}
	return fmt.Sprintf("turn %d: p0 hp=%d gold=%d, p1 hp=%d gold=%d",
		g.Turn, g.Players[0].Health, g.Players[0].Gold, g.Players[1].Health, g.Players[1].Gold)
}
