package main

import "kickstreet/cmd"

func main() {
	cmd.Execute()
}
