//go:build ignore

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/log"
)

const (
	refConfigFile = "./docs/bigconverge.toml"
)

func main() {

	cfg := config.Default()

	refFile, err := os.OpenFile(refConfigFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Printf("Error opening file %v %v", refConfigFile, err)
		os.Exit(1)
	}

	defer func() {
		if err := refFile.Close(); err != nil {
			fmt.Printf("Error closing filename %v", err)
		}
	}()

	if err := toml.NewEncoder(refFile).Encode(cfg); err != nil {
		log.Error(err)
	}
}
