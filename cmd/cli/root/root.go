package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DataDir and UploadsDir are shared by every subcommand; the CLI works on
// the data files directly, not through the API.
var (
	DataDir    string
	UploadsDir string
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "limeblog",
	Short: "Lime Blog offline tooling",
	Long:  "Offline tooling for the Lime Blog data files: seed demo content, inspect posts, manage users.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&DataDir, "data", "data", "directory holding posts.json and users.json")
	RootCmd.PersistentFlags().StringVar(&UploadsDir, "uploads", "uploads", "directory holding hero images")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the RootCmd for subcommand registration.
func GetRoot() *cobra.Command {
	return RootCmd
}
