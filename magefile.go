//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildEvtFilter)
	fmt.Println("Compilation finished")
	return nil
}

func BuildEvtFilter() error {
	fmt.Println("Building evtfilter executable...")
	return run("go", "build", "-o", "./bin/evtfilter", "./evtfilter")
}

// Test runs the unit tests of every package
func Test() error {
	fmt.Println("Running tests...")
	return run("go", "test", "./...")
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
