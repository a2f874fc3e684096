package main

import "github.com/AstraForge/skyhound-cli/cmd"

func main() {
	cmd.Execute()
}
