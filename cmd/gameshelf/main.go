package main

import "github.com/marshallshelly/gameshelf/cmd/gameshelf/commands"

func main() {
	commands.Execute()
}
