package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core/admission"
)

func (cli *commandLine) export(path string) error {
	if path == "" {
		path = admission.ExportFilename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err = cli.svc.ExportCSV(context.Background(), f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}

	fmt.Fprintf(cli.out, "exported to %s\n", path)
	return nil
}
