package main

import "github.com/Tiliavir/timelog-editor/cmd"

func main() {
	cmd.Execute()
}
