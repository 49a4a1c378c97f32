package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Deepak7704/100xSWE/internal/client"
	"github.com/Deepak7704/100xSWE/internal/core"
)

var (
	outputJSON  bool
	watchStatus bool
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Show the status of a submitted job",
	Long: `Show the state, progress and outcome of a job.

With --watch the command polls until the job reaches a terminal state and
prints the opened pull request or the failure reason.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output status as JSON")
	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Poll until the job finishes")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	api := client.New(apiBase())
	jobID := args[0]

	if !watchStatus {
		status, err := api.Status(cmd.Context(), jobID)
		if err != nil {
			errorColor.Printf("✗ %v\n", err)
			return err
		}
		return printStatus(status)
	}

	return watchJob(cmd.Context(), api, jobID)
}

func printStatus(status *client.JobStatus) error {
	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}

	boldColor.Printf("Job %s\n", status.JobID)
	fmt.Printf("  State:    %s\n", status.State)
	fmt.Printf("  Progress: %d%%\n", status.Progress)

	switch {
	case status.Result != nil:
		successColor.Printf("  PR:       %s (#%d)\n", status.Result.PRURL, status.Result.PRNumber)
	case status.FailedReason != "":
		errorColor.Printf("  Reason:   %s\n", status.FailedReason)
	}
	return nil
}

// watchJob polls the job until it finishes, reporting progress changes as
// they happen.
func watchJob(ctx context.Context, api *client.Client, jobID string) error {
	titleColor.Printf("Watching job %s\n", jobID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastProgress := -1
	for {
		status, err := api.Status(ctx, jobID)
		if err != nil {
			errorColor.Printf("✗ %v\n", err)
			return err
		}

		if status.Progress != lastProgress {
			dimColor.Printf("  %3d%%  %s\n", status.Progress, status.State)
			lastProgress = status.Progress
		}

		switch status.State {
		case core.JobStateCompleted:
			successColor.Println("✓ Job completed")
			if status.Result != nil {
				boldColor.Printf("  %s\n", status.Result.PRURL)
			}
			return nil
		case core.JobStateFailed:
			errorColor.Printf("✗ Job failed: %s\n", status.FailedReason)
			return fmt.Errorf("job %s failed", jobID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
