// Package client provides test commands for the DadDeck REST API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var (
	serverAddr string
	apiKey     string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the DadDeck API",
	Long:  `Client commands allow you to test the DadDeck API by making real HTTP requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "API server base URL")
	ClientCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Bearer API key")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(listCardsCmd)
	ClientCmd.AddCommand(getCardCmd)
	ClientCmd.AddCommand(openPackCmd)
	ClientCmd.AddCommand(collectionCmd)
	ClientCmd.AddCommand(battleCmd)
	ClientCmd.AddCommand(recipesCmd)
	ClientCmd.AddCommand(leaderboardCmd)
	ClientCmd.AddCommand(eventsCmd)
	ClientCmd.AddCommand(profileCmd)
}

type envelope struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest performs one API call and returns the decoded data section
func doRequest(method, path string, body interface{}) (map[string]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, serverAddr+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, raw)
	}
	if env.Error != nil {
		return nil, fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
	}
	return env.Data, nil
}

func decodeField(data map[string]json.RawMessage, field string, out interface{}) error {
	raw, ok := data[field]
	if !ok {
		return fmt.Errorf("response has no %q field", field)
	}
	return json.Unmarshal(raw, out)
}

// rarityColor maps each rarity to a print color
func rarityColor(r entities.Rarity) *color.Color {
	switch r {
	case entities.RarityUncommon:
		return color.New(color.FgGreen)
	case entities.RarityRare:
		return color.New(color.FgCyan)
	case entities.RarityEpic:
		return color.New(color.FgMagenta)
	case entities.RarityLegendary:
		return color.New(color.FgYellow)
	case entities.RarityMythic:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func printCard(card *entities.Card, holo bool) {
	c := rarityColor(card.Rarity)
	suffix := ""
	if holo {
		suffix = " ✨ HOLO"
	}
	c.Printf("  [%s] %s (%s/%s)%s\n", card.ID, card.Name, card.Rarity, card.Type, suffix)
	fmt.Printf("      ATK %d  DEF %d  SPD %d  STA %d\n",
		card.Stats.Attack, card.Stats.Defense, card.Stats.Speed, card.Stats.Stamina)
}
