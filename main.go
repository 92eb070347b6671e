package main

import "github.com/fakeyudi/pathwise/cmd"

func main() {
	cmd.Execute()
}
