// Package main is the entry point for the codequal CLI.
package main

import (
	"github.com/huangsam/codequal/cmd"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Error", err)
	}
}
