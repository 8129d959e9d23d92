// main is the entry point for the mapmykidz CLI.
package main

import (
	"github.com/mapmykidz/Mapmykidz/cmd"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
