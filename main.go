package main

import (
	"imagecompare/cmd"
	"imagecompare/signalhandler"
)

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	cmd.Execute()
}
