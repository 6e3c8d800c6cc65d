//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the demo with assets/scene.toml.
func (Run) Demo() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run demo...")
	_, err := executeCmd(binary, withArgs("-config", "assets/scene.toml"), withStream())
	return err
}
