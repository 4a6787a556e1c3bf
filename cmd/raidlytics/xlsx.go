package main

import (
	"os"

	"raidlytics/report"

	"github.com/pkg/errors"
)

func writeXLSX(path string, rows []report.GearRow) error {
	fs, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}

	err = report.WriteGearXLSX(fs, rows)
	if err != nil {
		fs.Close()
		os.Remove(path)
		return err
	}
	return errors.WithStack(fs.Close())
}
