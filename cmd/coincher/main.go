// coincher is an interactive terminal client for a coinched server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gyscos/coinched/client"
)

func main() {
	host := flag.String("host", "http://localhost:3000", "server base URL")
	flag.Parse()

	fmt.Printf("looking for a table on %s...\n", *host)
	backend, err := client.Join(*host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("seated as %s (player id %d)\n", backend.Pos(), backend.PlayerID())

	c := client.NewClient(backend, newTermFrontend(backend.Pos()))
	c.Run()
	fmt.Printf("final scores: %v\n", c.Scores)
}
