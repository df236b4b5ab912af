package main

import (
	"log"
	"os"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/syllabus"
	aisvc "github.com/trezcool/studium/services/ai"
	emailsvc "github.com/trezcool/studium/services/email"
	logsvc "github.com/trezcool/studium/services/logger"
	"github.com/trezcool/studium/storage/database"
	sqlxrepos "github.com/trezcool/studium/storage/database/sqlx"
)

var stdLogger *log.Logger

func main() {
	defer os.Exit(0)

	stdLogger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(db.Ping())

	// set up services
	aiSvc := aisvc.NewService(conf, logger)
	classSvc := class.NewService(sqlxrepos.NewClassRepository(db))
	schedSvc := schedule.NewService(sqlxrepos.NewScheduleRepository(db), logger)
	syllabusSvc := syllabus.NewService(
		aiSvc, aiSvc, classSvc, schedSvc, emailsvc.NewConsoleService(conf), conf, logger,
	)

	// start CLI
	cli := commandLine{
		db:          db.DB,
		syllabusSvc: syllabusSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		stdLogger.Fatal(err)
	}
}
