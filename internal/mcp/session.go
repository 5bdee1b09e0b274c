package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/Tmi-creator/hs-autobattler/internal/game"
	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// activeGame is the singleton game session (one per stdio process),
// mirroring the synchronous single-threaded scheduling model (§5):
// one MCP client drives one game, one call at a time, no concurrency.
var activeGame *game.Game

// activeLogger accumulates the active game's events across calls. No
// tool returns them.
var activeLogger *gamelog.MemoryLogger

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
