package main

import (
	"os"

	"github.com/YhonJ8a/TrafficBGA/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
