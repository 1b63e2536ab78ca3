package main

import "github.com/tish-shell/tish/cmd"

func main() {
	cmd.Execute()
}
