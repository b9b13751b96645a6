//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// gedcomFile returns the input file for pipeline targets, taken from the
// GEDCOM_FILE environment variable.
func gedcomFile() (string, error) {
	path := os.Getenv("GEDCOM_FILE")
	if path == "" {
		return "", fmt.Errorf("set GEDCOM_FILE to the input .ged file")
	}
	return path, nil
}

func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Repair writes a level-repaired copy of GEDCOM_FILE to data/repaired/.
func Repair() error {
	mg.Deps(Build)
	in, err := gedcomFile()
	if err != nil {
		return err
	}
	out := filepath.Join("data", "repaired", filepath.Base(in))
	return runBinary("repair", in, "--output", out)
}

// Report renders GEDCOM_FILE as a Markdown report under reports/.
func Report() error {
	mg.Deps(Build)
	in, err := gedcomFile()
	if err != nil {
		return err
	}
	base := filepath.Base(in)
	out := filepath.Join("reports", base[:len(base)-len(filepath.Ext(base))]+".md")
	return runBinary("report", in, "--output", out)
}

// Index ingests GEDCOM_FILE into the SQLite index under data/.
func Index() error {
	mg.Deps(Build)
	in, err := gedcomFile()
	if err != nil {
		return err
	}
	return runBinary("index", "store", in, "--data-dir", "data")
}
