package main

import "wormwars/cmd"

func main() {
	cmd.Execute()
}
