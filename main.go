package main

import "github.com/reavox/reavox/cmd"

func main() {
	cmd.Execute()
}
