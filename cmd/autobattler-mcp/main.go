package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	autobattlermcp "github.com/Tmi-creator/hs-autobattler/internal/mcp"
)

func main() {
	s := server.NewMCPServer("autobattler", "1.0.0")
	autobattlermcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
