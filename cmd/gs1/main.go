/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/gs1kit/cmd/gs1/cmd"
	"github.com/ssargent/gs1kit/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer(nil)

	// Inject dependencies into cmd package
	cmd.SetContainer(container)

	cmd.Execute()
}
