package main

import (
	"os"

	"shopcart_sentiment/cmd/rescorer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
