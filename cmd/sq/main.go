package main

import "sidequest/cmd/sq/root"

func main() {
	root.Execute()
}
