package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/studium/core/syllabus"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sql.DB
	syllabusSvc *syllabus.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix)")
	fmt.Println("  replan -class ID -user ID -syllabus FILE - re-run syllabus ingestion for a class")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	replanCmd := flag.NewFlagSet("replan", flag.ExitOnError)
	replanClass := replanCmd.String("class", "", "The class ID to replan.")
	replanUser := replanCmd.String("user", "", "The ID of the user owning the class.")
	replanFile := replanCmd.String("syllabus", "", "Path to the syllabus text file.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "replan":
		if err := replanCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *replanClass == "" || *replanUser == "" || *replanFile == "" {
			replanCmd.Usage()
			return errHelp
		}
		return cli.replan(*replanClass, *replanUser, *replanFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
