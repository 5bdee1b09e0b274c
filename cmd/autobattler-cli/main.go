package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Tmi-creator/hs-autobattler/internal/game"
	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "simulate":
		runSimulate(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  autobattler-cli simulate [--seed N] [--max-turns N] [--quiet]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate   Run a full game to completion, both players driven by a")
	fmt.Println("             random policy over the action kinds the action mask")
	fmt.Println("             allows, printing the event log.")
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "RNG seed for the game")
	maxTurns := fs.Int("max-turns", 200, "safety cap on the number of turns to simulate")
	quiet := fs.Bool("quiet", false, "suppress the event log")
	fs.Parse(args)

	var logger gamelog.EventLogger
	if !*quiet {
		logger = gamelog.NewTextLogger(os.Stdout)
	}

	g := game.NewGame(*seed, logger)
	policyRng := rand.New(rand.NewSource(*seed + 1))

	for turn := 0; turn < *maxTurns && !g.Done; turn++ {
		startTurn := g.Turn
		for !g.Done && g.Turn == startTurn {
			for player := 0; player < 2; player++ {
				if g.Done {
					break
				}
				playRandomLegalAction(g, player, policyRng)
			}
		}
	}

	fmt.Println(g.Describe())
}

// playRandomLegalAction picks a random action kind that the action mask
// allows, fills in random indices, and submits it; Step may reject it.
// Mid-discovery, it always picks option 0.
func playRandomLegalAction(g *game.Game, player int, rng *rand.Rand) {
	p := g.Players[player]
	if p.Discovery.Active {
		g.Step(player, game.ActionDiscoverChoice, map[string]int{"index": 0})
		return
	}

	mask := g.ActionMask(player)
	var choices []game.ActionKind
	for kind, ok := range mask {
		if ok && kind != game.ActionEndTurn {
			choices = append(choices, kind)
		}
	}

	// Bias toward ending the turn once no other productive action is
	// obviously available, so games terminate in reasonable time.
	if len(choices) == 0 || rng.Intn(4) == 0 {
		g.Step(player, game.ActionEndTurn, nil)
		return
	}

	kind := choices[rng.Intn(len(choices))]
	kwargs := map[string]int{}
	switch kind {
	case game.ActionBuy, game.ActionSell:
		if n := len(p.Store); n > 0 {
			kwargs["index"] = rng.Intn(n)
		}
	case game.ActionPlay:
		if n := len(p.Hand); n > 0 {
			kwargs["hand_index"] = rng.Intn(n)
		}
	case game.ActionSwap:
		if n := len(p.Board); n >= 2 {
			a := rng.Intn(n)
			b := rng.Intn(n)
			kwargs["a"], kwargs["b"] = a, b
		} else {
			g.Step(player, game.ActionEndTurn, nil)
			return
		}
	}
	g.Step(player, kind, kwargs)
}
