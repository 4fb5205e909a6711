package main

import "github.com/abdul-hamid-achik/routemap/cmd/routemap/commands"

func main() {
	commands.Execute()
}
