package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/access"
	"github.com/trezcool/darasa/core/roster"
	"github.com/trezcool/darasa/core/session"
	logsvc "github.com/trezcool/darasa/services/logger"
	remotesvc "github.com/trezcool/darasa/services/remote"
	localstore "github.com/trezcool/darasa/storage/local"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "PORTAL : ", log.LstdFlags),
		conf,
	)
	logger.Enable(!conf.Debug)

	directory := remotesvc.NewDirectory()
	registry := remotesvc.NewRegistry()

	cli := commandLine{
		store:     session.NewStore(localstore.NewFileStorage(conf.SessionFile)),
		guard:     access.NewGuard(),
		directory: directory,
		roster:    roster.NewService(directory, registry, logger, nil),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
