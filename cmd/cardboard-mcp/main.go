// Command cardboard-mcp exposes cardboard's read-only introspection
// surface as MCP tools over stdio, for clients such as Claude Code.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardboardwm/cardboard/internal/mcpserver"
)

func main() {
	socket := flag.String("socket", "", "IPC socket path (defaults to the environment-derived default)")
	flag.Parse()

	if len(flag.Args()) > 0 && (flag.Args()[0] == "help" || flag.Args()[0] == "-h" || flag.Args()[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: cardboard-mcp [-socket <path>]")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Designed to be invoked by MCP clients")
		fmt.Fprintln(os.Stdout, "such as Claude Code or Claude Desktop.")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Example (Claude Code):")
		fmt.Fprintln(os.Stdout, "  claude mcp add cardboard -- cardboard-mcp")
		return
	}

	server := mcpserver.NewServer(*socket)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
