package commands

import (
	"fmt"
	"os"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/spf13/cobra"
)

var (
	generateCycles    []string
	generateBuildings []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schedules for cycles and buildings",
	Long: `Open a generation session, select the given cycles and buildings, and
submit the bulk generation request. Selections keep their default
configuration (one-day duration starting today, task auto-creation on).

Examples:
  console generate --cycle cycle-1 --building bld-17
  console generate --cycle cycle-1 --cycle cycle-2 --building bld-17 --building bld-23`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(generateCycles) == 0 {
			fmt.Println("❌ Select at least one cycle with --cycle")
			os.Exit(1)
		}
		if len(generateBuildings) == 0 {
			fmt.Println("❌ Select at least one building with --building")
			os.Exit(1)
		}

		client := newAPIClient()

		if err := client.HealthCheck(); err != nil {
			fmt.Printf("❌ API health check failed: %v\n", err)
			fmt.Println("💡 Tip: Make sure the console API server is running")
			os.Exit(1)
		}

		session, err := client.OpenSession()
		if err != nil {
			fmt.Printf("❌ Failed to open session: %v\n", err)
			os.Exit(1)
		}
		sessionID := session.SessionID.String()

		for _, cycleID := range generateCycles {
			if _, err := client.ToggleCycle(sessionID, cycleID); err != nil {
				fmt.Printf("❌ Failed to select cycle %s: %v\n", cycleID, err)
				os.Exit(1)
			}
		}
		for _, buildingID := range generateBuildings {
			if _, err := client.ToggleBuilding(sessionID, buildingID); err != nil {
				fmt.Printf("❌ Failed to select building %s: %v\n", buildingID, err)
				os.Exit(1)
			}
		}

		result, err := client.Generate(sessionID)
		if err != nil {
			fmt.Printf("❌ Generation request failed: %v\n", err)
			os.Exit(1)
		}

		if outputJSON {
			printJSON(result)
			return
		}

		switch result.State {
		case models.GenerationSucceeded:
			fmt.Printf("✅ %s\n", result.Message)
		default:
			fmt.Printf("❌ Generation failed: %s\n", result.Message)
			fmt.Println("💡 Your selections are preserved; fix the problem and retry")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringArrayVar(&generateCycles, "cycle", nil, "Cycle ID to select (repeatable)")
	generateCmd.Flags().StringArrayVar(&generateBuildings, "building", nil, "Building detail ID to select (repeatable)")
}
