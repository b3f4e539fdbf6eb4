package main

import (
	"os"
	"os/signal"
	"syscall"

	"mac2switchport/cmd"
)

// subscribeSIGPIPE routes SIGPIPE deliveries to a channel for the life of
// the process. While the subscription exists, a write to a closed stdout
// fails with EPIPE like any other write error instead of raising a fatal
// SIGPIPE, so stream mode can treat a consumer exiting early as a normal
// end of output.
func subscribeSIGPIPE() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGPIPE)
	return ch
}

func main() {
	subscribeSIGPIPE()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
