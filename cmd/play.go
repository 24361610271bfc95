package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tunevault/config"
	"tunevault/core/auth"
	"tunevault/core/catalog"
	"tunevault/core/player"
	"tunevault/db"
	"tunevault/repository"

	"github.com/spf13/cobra"
)

var playSongID int64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a song from the library",
	Long:  `Fetches the song from the database, writes it to the scratch directory and plays it with ffplay. Ctrl+C stops playback.`,
	Run: func(cmd *cobra.Command, args []string) {
		if playSongID <= 0 {
			log.Fatal("a song id is required, use --song")
		}

		cfg := config.Load()

		session := auth.NewFileSession(cfg.SessionFile)
		userID, err := session.CurrentUserID()
		if err != nil {
			log.Fatalf("No active session: %v (log in first)", err)
		}

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseDB()

		if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
			log.Fatalf("Failed to create scratch directory: %v", err)
		}

		songRepo := repository.NewMySQLSongRepository(db.DB)
		historyRepo := repository.NewMySQLHistoryRepository(db.DB)
		cat := catalog.NewStore(songRepo, historyRepo)

		backend := player.NewFFPlayBackend(cfg.FFplayPath)
		p := player.New(backend, cat, cfg.ScratchDir)
		defer p.Close()

		now, err := p.Play(context.Background(), userID, playSongID)
		if err != nil {
			log.Fatalf("Playback failed: %v", err)
		}
		fmt.Printf("Playing: %s - %s\n", now.Artist, now.Title)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				fmt.Println("Stopping.")
				return
			case <-ticker.C:
				if !backend.IsBusy() {
					return
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int64VarP(&playSongID, "song", "s", 0, "id of the song to play")
}
