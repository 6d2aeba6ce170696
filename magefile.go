//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build both binaries
var Default = Build

// Build builds the API server and the boardctl terminal client into bin/
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	if err := sh.RunV("go", "build", "-o", "bin/server", "./cmd/server"); err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	if err := sh.RunV("go", "build", "-o", "bin/boardctl", "./cmd/boardctl"); err != nil {
		return fmt.Errorf("build boardctl: %w", err)
	}
	return nil
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests after vet
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("bin")
}
