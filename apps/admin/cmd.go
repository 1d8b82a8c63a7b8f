package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core/admission"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db  *sql.DB
	svc *admission.Service
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a database migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  export [-out FILE]     - export all applications to a CSV file")
	fmt.Fprintln(cli.out, "  stats                  - print the admissions dashboard counters")
	fmt.Fprintln(cli.out, "  list [FILTER FLAGS]    - list applications, optionally filtered")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Output file path. Defaults to admissions_<date>.csv.")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listSearch := listCmd.String("search", "", "Keyword matched against student name, reference code, father name or phone.")
	listStatus := listCmd.String("status", "", "Filter by status (pending, reviewed, approved, rejected, waitlisted).")
	listClass := listCmd.String("class", "", "Filter by applying-for class.")
	listPriority := listCmd.String("priority", "", "Filter by priority (high, medium, low).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportOut)
	case "stats":
		return cli.stats()
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.list(admission.QueryFilter{
			Search:   *listSearch,
			Status:   *listStatus,
			Class:    *listClass,
			Priority: *listPriority,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}
