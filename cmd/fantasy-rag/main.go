// Package main is the entry point for the NBA fantasy chatbot service.
package main

import (
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	app "github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot"
)

func main() {
	if err := app.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
