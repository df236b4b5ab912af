package main

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
)

var readFileFunc = ioutil.ReadFile // mockable

// replan re-runs the full ingestion pipeline for a class from a syllabus
// text file, replacing its derived schedule.
func (cli *commandLine) replan(classID, userID, path string) error {
	text, err := readFileFunc(path)
	if err != nil {
		return errors.Wrap(err, "reading syllabus file")
	}

	res, err := cli.syllabusSvc.Ingest(context.Background(), userID, "", classID, string(text))
	if err != nil {
		return errors.Wrap(err, "ingesting syllabus")
	}

	fmt.Printf(
		"replanned class %s: %d assignments, %d class meetings, %d study sessions (%d dropped), %d blocks saved\n",
		classID, len(res.Assignments), res.Meetings, res.Sessions, res.Dropped, len(res.Blocks),
	)
	return nil
}
