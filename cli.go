//go:build cli
// +build cli

package main

import (
	_ "phuler.GO/custom"

	"phuler.GO/cmd"
	"phuler.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
