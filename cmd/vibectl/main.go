package main

import "vibemarket-backend/cmd/vibectl/commands"

func main() {
	commands.Execute()
}
