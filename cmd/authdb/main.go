package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/quatton/authdb/cmd/authdb/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "authdb crashed: %v\n", r)
			if os.Getenv("AUTHDB_DEBUG") != "" {
				debug.PrintStack()
			}
			os.Exit(2)
		}
	}()

	cmd.Execute()
}
