package main

import "nerja/cmd"

func main() {
	cmd.Execute()
}
