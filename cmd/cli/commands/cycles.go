package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/propertyops/maintenance-console/internal/cli"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List maintenance cycles",
	Long: `List the maintenance cycle templates available for schedule generation.

Examples:
  console cycles
  console cycles --json`,
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient()

		cycles, err := client.GetCycles()
		if err != nil {
			fmt.Printf("❌ Failed to get cycles: %v\n", err)
			os.Exit(1)
		}

		if outputJSON {
			printJSON(cycles)
			return
		}

		printCycleList(cycles)
	},
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
}

func newAPIClient() *cli.Client {
	return cli.NewClient(viper.GetString("api.url"), viper.GetString("api.token"))
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("❌ Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func printCycleList(cycles []models.MaintenanceCycle) {
	if len(cycles) == 0 {
		fmt.Println("📭 No maintenance cycles found")
		return
	}

	fmt.Printf("\n🔧 Found %d maintenance cycle(s):\n\n", len(cycles))
	for _, c := range cycles {
		fmt.Printf("  %s  %s (%s, every %s)\n", c.CycleID, c.CycleName, c.DeviceType, c.Frequency)
	}
	fmt.Println()
}
