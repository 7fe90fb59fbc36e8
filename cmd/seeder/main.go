// Seeder posts a batch of sample scores at a running API instance so local
// leaderboards have data to show.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const apiURL = "http://localhost:8080/api/v1/scores"

type submission struct {
	PlayerName string  `json:"playerName"`
	GameMode   string  `json:"gameMode"`
	Score      float64 `json:"score"`
}

type submitResult struct {
	Entry struct {
		ID         string `json:"id"`
		PlayerName string `json:"playerName"`
		GameMode   string `json:"gameMode"`
		Score      int64  `json:"score"`
	} `json:"entry"`
	Rank int `json:"rank"`
}

func main() {
	players := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}
	modes := []string{"SpeedSort", "BenchSort", "DraftSort", "SchoolMatch", "QuickRound", "Endless", "PositionChallenge"}

	client := &http.Client{Timeout: 10 * time.Second}

	for _, mode := range modes {
		for i, player := range players {
			sub := submission{
				PlayerName: player,
				GameMode:   mode,
				Score:      float64(1000 - i*137),
			}
			payload, err := json.Marshal(sub)
			if err != nil {
				log.Fatalf("marshal: %v", err)
			}

			resp, err := client.Post(apiURL, "application/json", bytes.NewReader(payload))
			if err != nil {
				log.Fatalf("post: %v", err)
			}

			var result submitResult
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				log.Fatalf("decode: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				log.Fatalf("unexpected status %d for %s/%s", resp.StatusCode, mode, player)
			}
			fmt.Printf("%-18s %-8s score=%-5d rank=%d\n", mode, player, result.Entry.Score, result.Rank)
		}
	}
}
