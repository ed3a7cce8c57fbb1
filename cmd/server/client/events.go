package client

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var eventStatus string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the event calendar",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventStatus, "status", "", "filter: active, upcoming, or ended")
}

func runEvents(cmd *cobra.Command, args []string) error {
	path := "/v1/events"
	if eventStatus != "" {
		path += "?status=" + url.QueryEscape(eventStatus)
	}

	data, err := doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	var list []*entities.Event
	if err := decodeField(data, "events", &list); err != nil {
		return err
	}

	for _, event := range list {
		window := fmt.Sprintf("%s to %s",
			time.Unix(event.StartsAt, 0).UTC().Format("2006-01-02"),
			time.Unix(event.EndsAt, 0).UTC().Format("2006-01-02"))
		line := fmt.Sprintf("%-10s %-28s %s", event.Status, event.Name, window)
		switch event.Status {
		case entities.EventStatusActive:
			color.Green(line)
		case entities.EventStatusUpcoming:
			color.Cyan(line)
		default:
			color.White(line)
		}
		if event.Description != "" {
			fmt.Printf("           %s\n", event.Description)
		}
	}
	return nil
}
