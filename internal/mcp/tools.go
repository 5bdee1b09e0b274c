package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Tmi-creator/hs-autobattler/internal/game"
	gamelog "github.com/Tmi-creator/hs-autobattler/internal/log"
)

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(takeActionTool(), handleTakeAction)
	s.AddTool(getObservationTool(), handleGetObservation)
	s.AddTool(getActionMaskTool(), handleGetActionMask)
}

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new two-player auto-battler game and return the initial observation for player 0."),
		mcp.WithNumber("seed", mcp.Description("Random seed for the game's deterministic RNG stream. Defaults to the current time.")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Submit one action for a player. Action kinds: end_turn, roll, buy, sell, play, swap, freeze, upgrade, discover_choice. "+
			"Returns whether the game is done and the acting player's updated observation."),
		mcp.WithNumber("player", mcp.Required(), mcp.Description("Player index: 0 or 1")),
		mcp.WithString("action", mcp.Required(), mcp.Description("One of: end_turn, roll, buy, sell, play, swap, freeze, upgrade, discover_choice")),
		mcp.WithNumber("index", mcp.Description("Shop index for buy, board index for sell, option index for discover_choice")),
		mcp.WithNumber("hand_index", mcp.Description("Hand index, for play")),
		mcp.WithNumber("insert_index", mcp.Description("Board insertion index, for play of a unit")),
		mcp.WithNumber("target_index", mcp.Description("Target board index, for play of a targeted spell")),
		mcp.WithNumber("a", mcp.Description("First board index, for swap")),
		mcp.WithNumber("b", mcp.Description("Second board index, for swap")),
	)
}

func getObservationTool() mcp.Tool {
	return mcp.NewTool("get_observation",
		mcp.WithDescription("Get the current observation for a player: global features, board/hand/shop slots, and any pending discovery. Read-only."),
		mcp.WithNumber("player", mcp.Required(), mcp.Description("Player index: 0 or 1")),
	)
}

func getActionMaskTool() mcp.Tool {
	return mcp.NewTool("get_action_mask",
		mcp.WithDescription("Get which action kinds the game state lets a player submit (game over, mid-discovery and already-ready gating). Per-action preconditions such as gold or indices are not checked, so take_action may still reject an allowed kind. Read-only."),
		mcp.WithNumber("player", mcp.Required(), mcp.Description("Player index: 0 or 1")),
	)
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := request.GetInt("seed", int(time.Now().UnixNano()))
	activeLogger = gamelog.NewMemoryLogger()
	activeGame = game.NewGame(int64(seed), activeLogger)

	return mcp.NewToolResultText(respondJSON(BuildObservation(activeGame, 0))), nil
}

func handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = mcp.NewToolResultErrorf("engine error: %v", r)
		}
	}()

	if activeGame == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	player := request.GetInt("player", -1)
	if player != 0 && player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}

	kind, ok := actionKindByName[request.GetString("action", "")]
	if !ok {
		return mcp.NewToolResultErrorf("unknown action %q", request.GetString("action", "")), nil
	}

	kwargs := map[string]int{}
	for _, key := range []string{"index", "hand_index", "insert_index", "target_index", "a", "b"} {
		if v := request.GetInt(key, -1000000); v != -1000000 {
			kwargs[key] = v
		}
	}

	done, info := activeGame.Step(player, kind, kwargs)

	resp := map[string]any{
		"ok":          info == "",
		"info":        info,
		"done":        done,
		"observation": BuildObservation(activeGame, player),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetObservation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeGame == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	player := request.GetInt("player", -1)
	if player != 0 && player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}
	return mcp.NewToolResultText(respondJSON(BuildObservation(activeGame, player))), nil
}

func handleGetActionMask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeGame == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	player := request.GetInt("player", -1)
	if player != 0 && player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}
	mask := activeGame.ActionMask(player)
	named := make(map[string]bool, len(mask))
	for kind, allowed := range mask {
		named[actionNameByKind[kind]] = allowed
	}
	return mcp.NewToolResultText(respondJSON(named)), nil
}

var actionKindByName = map[string]game.ActionKind{
	"end_turn":        game.ActionEndTurn,
	"roll":            game.ActionRoll,
	"buy":             game.ActionBuy,
	"sell":            game.ActionSell,
	"play":            game.ActionPlay,
	"swap":            game.ActionSwap,
	"freeze":          game.ActionFreeze,
	"upgrade":         game.ActionUpgrade,
	"discover_choice": game.ActionDiscoverChoice,
}

var actionNameByKind = func() map[game.ActionKind]string {
	m := make(map[game.ActionKind]string, len(actionKindByName))
	for name, kind := range actionKindByName {
		m[kind] = name
	}
	return m
}()
