package main

import "fedigraph/cmd"

func main() {
	cmd.Execute()
}
