package main

import "github.com/upstarter/roughcut/internal/cli"

func main() {
	cli.Main()
}
