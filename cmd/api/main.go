package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/cmd/api/commands"
)

// @title Taskflow API
// @version 1.0
// @description Task tracking service with status, priority and overdue handling

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "Taskflow API Server",
		Long:  `Taskflow is a task tracking service: create, list, update and delete tasks with status and priority rules applied on every mutation.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
