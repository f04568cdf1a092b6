package commands

import (
	"fmt"
	"os"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/spf13/cobra"
)

var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "List your building targets",
	Long: `List the building targets assigned to you, the candidates for schedule
generation.

Examples:
  console buildings
  console buildings --json`,
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient()

		buildings, err := client.GetBuildings()
		if err != nil {
			fmt.Printf("❌ Failed to get buildings: %v\n", err)
			os.Exit(1)
		}

		if outputJSON {
			printJSON(buildings)
			return
		}

		printBuildingList(buildings)
	},
}

func init() {
	rootCmd.AddCommand(buildingsCmd)
}

func printBuildingList(buildings []models.BuildingTarget) {
	if len(buildings) == 0 {
		fmt.Println("📭 No buildings assigned")
		return
	}

	fmt.Printf("\n🏢 Found %d building(s):\n\n", len(buildings))
	for _, b := range buildings {
		name := b.Name
		if b.BuildingName != "" {
			name = fmt.Sprintf("%s / %s", b.BuildingName, b.Name)
		}
		fmt.Printf("  %s  %s (%d floors, %d apartments)\n", b.BuildingDetailID, name, b.FloorCount, b.ApartmentCount)
	}
	fmt.Println()
}
