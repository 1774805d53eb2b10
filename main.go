package main

import "github.com/brk3/habitdash/cmd"

func main() {
	cmd.Execute()
}
