package main

import "github.com/loom-ui/loom/cmd/loom/cmd"

func main() {
	cmd.Execute()
}
