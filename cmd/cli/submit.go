package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Deepak7704/100xSWE/internal/client"
)

var (
	submitRepo string
	submitTask string
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a change request for a repository",
	Long: `Submit a natural-language change request for a GitHub repository.
The service forks the repository, generates the change, and opens a pull
request against the upstream default branch.

Examples:
  swe submit --repo https://github.com/acme/widget --task "add a LICENSE file"`,
	RunE: runSubmit,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	submitCmd.Flags().StringVarP(&submitRepo, "repo", "r", "", "GitHub repository URL")
	submitCmd.Flags().StringVarP(&submitTask, "task", "t", "", "Change request to carry out")
	_ = submitCmd.MarkFlagRequired("repo")
	_ = submitCmd.MarkFlagRequired("task")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	api := client.New(apiBase())

	reply, err := api.Submit(cmd.Context(), submitRepo, submitTask)
	if err != nil {
		errorColor.Printf("✗ %v\n", err)
		return err
	}

	successColor.Println("✓ Change request accepted")
	boldColor.Printf("  Job:    %s\n", reply.JobID)
	dimColor.Printf("  Status: %s%s\n", apiBase(), reply.StatusURL)
	dimColor.Printf("\nFollow it with: swe status %s --watch\n", reply.JobID)
	return nil
}
