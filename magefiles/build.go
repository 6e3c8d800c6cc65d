//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binary = "bin/glade"

type Build mg.Namespace

// Builds the demo binary into bin/.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/glade"), withStream())
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs go mod tidy.
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}
