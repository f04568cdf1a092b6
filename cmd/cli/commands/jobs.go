package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/spf13/cobra"
)

var (
	jobsPage      int
	jobsLimit     int
	cancelConfirm bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs <schedule-id>",
	Short: "List a schedule's jobs",
	Long: `List one page of a schedule's jobs with the actions available for each.

Examples:
  console jobs sched-42
  console jobs sched-42 --page 2 --limit 25`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient()

		listing, err := client.GetJobs(args[0], jobsPage, jobsLimit)
		if err != nil {
			fmt.Printf("❌ Failed to get jobs: %v\n", err)
			os.Exit(1)
		}

		if outputJSON {
			printJSON(listing)
			return
		}

		printJobListing(listing)
	},
}

var jobsStartCmd = &cobra.Command{
	Use:   "start <schedule-id> <job-id>",
	Short: "Start a pending job",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runJobAction(args[0], args[1], "start", false)
	},
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <schedule-id> <job-id>",
	Short: "Cancel a job (requires --yes)",
	Long: `Cancel a pending or in-progress job. Cancellation is irreversible, so it
must be confirmed with --yes.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !cancelConfirm {
			fmt.Println("❌ Cancellation is irreversible; confirm with --yes")
			os.Exit(1)
		}
		runJobAction(args[0], args[1], "cancel", true)
	},
}

var jobsNotifyCmd = &cobra.Command{
	Use:   "notify <schedule-id> <job-id>",
	Short: "Send the maintenance notification email for a job",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runJobAction(args[0], args[1], "notify", false)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsStartCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	jobsCmd.AddCommand(jobsNotifyCmd)

	jobsCmd.Flags().IntVar(&jobsPage, "page", 1, "Page to fetch")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 10, "Jobs per page")
	jobsCancelCmd.Flags().BoolVar(&cancelConfirm, "yes", false, "Confirm the cancellation")
}

func runJobAction(scheduleID, jobID, action string, confirmed bool) {
	client := newAPIClient()

	if err := client.JobAction(scheduleID, jobID, action, confirmed); err != nil {
		fmt.Printf("❌ Failed to %s job %s: %v\n", action, jobID, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Applied %s to job %s\n", action, jobID)
}

func printJobListing(listing *services.JobListing) {
	if len(listing.Data) == 0 {
		fmt.Println("📭 No jobs on this page")
		return
	}

	p := listing.Pagination
	fmt.Printf("\n🗓  Page %d of %d (%d job(s) total):\n\n", p.Page, p.TotalPages, p.Total)

	for _, job := range listing.Data {
		actions := "-"
		if len(job.AvailableActions) > 0 {
			parts := make([]string, 0, len(job.AvailableActions))
			for _, a := range job.AvailableActions {
				parts = append(parts, string(a))
			}
			actions = strings.Join(parts, ", ")
		}
		fmt.Printf("  %s  %-12s %s (%s)  actions: %s\n",
			job.ScheduleJobID, job.Status, job.Building.Name, job.RunDate, actions)
	}

	fmt.Printf("\nPages: %s\n\n", formatWindow(listing))
}

func formatWindow(listing *services.JobListing) string {
	parts := make([]string, 0, len(listing.Window))
	for _, entry := range listing.Window {
		if entry.Ellipsis {
			parts = append(parts, "…")
			continue
		}
		if entry.Page == listing.Pagination.Page {
			parts = append(parts, fmt.Sprintf("[%d]", entry.Page))
		} else {
			parts = append(parts, fmt.Sprintf("%d", entry.Page))
		}
	}
	return strings.Join(parts, " ")
}
