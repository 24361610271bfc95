package cmd

import (
	"tunevault/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the TuneVault HTTP server",
	Long:  `Starts the HTTP API: catalog, playlists, favorites and player control.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
