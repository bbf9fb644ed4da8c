package main

import (
	"os"
	"time"

	"gridmcts/internal/cmd"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := gridmcts(); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func gridmcts() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
