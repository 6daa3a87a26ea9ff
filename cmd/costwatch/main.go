// main is the entry point for the costwatch CLI.
package main

import (
	"os"

	"github.com/costwatch/costwatch/cmd"
	"github.com/costwatch/costwatch/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("profiling stop failed", stopErr)
	}
	if err != nil {
		contract.LogWarn("costwatch failed", err)
		os.Exit(1)
	}
}
