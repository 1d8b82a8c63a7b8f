package main

import (
	"fmt"
	"log"
	"os"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/admission"
	logsvc "github.com/littleheartschool/backend/services/logger"
	"github.com/littleheartschool/backend/storage/database"
	sqlxrepos "github.com/littleheartschool/backend/storage/database/sqlx"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	if err = database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer db.Close()

	svc := admission.NewService(
		sqlxrepos.NewApplicationRepository(db),
		logger,
		core.LogNotifier{Log: logger},
		conf,
	)

	// start CLI
	cli := commandLine{
		db:  db.DB,
		svc: svc,
		out: os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
