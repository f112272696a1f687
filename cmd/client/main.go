package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lk16/cco/internal/client"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/ws"
)

const dialTimeout = 5 * time.Second

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}

func printMatches(matches *models.MatchesResponse) {
	if matches.Count == 0 {
		fmt.Println("No matches")
		return
	}
	for _, match := range matches.Matches {
		status := "open"
		if !match.Open {
			status = "vs " + match.GuestName
		}
		fmt.Printf("%s  %-16s %s (%s)\n", match.ID, match.Name, match.HostName, status)
	}
}

// receive prints everything the server sends until the connection is closed.
func receive(session *client.Session, view *client.View, done chan<- struct{}) {
	defer close(done)

	for {
		msg, err := session.Receive()
		if err != nil {
			slog.Debug("Stopped receiving", "error", err)
			return
		}

		if err := handleMessage(msg, view); err != nil {
			slog.Error("Failed to handle message", "event", msg.Event, "error", err)
		}
	}
}

func handleMessage(msg *ws.Incoming, view *client.View) error {
	switch msg.Event {
	case ws.EventMatchState:
		var state models.MatchState
		if err := json.Unmarshal(msg.Data, &state); err != nil {
			return err
		}
		view.Update(state)

		lines, err := view.Lines()
		if err != nil {
			return err
		}
		printLines(lines)
	case ws.EventMatches:
		var matches models.MatchesResponse
		if err := json.Unmarshal(msg.Data, &matches); err != nil {
			return err
		}
		printMatches(&matches)
	case ws.EventMatch:
		var match models.MatchSummary
		if err := json.Unmarshal(msg.Data, &match); err != nil {
			return err
		}
		fmt.Printf("Match %s (%s)\n", match.Name, match.ID)
	case ws.EventInputDone:
		var resp models.InputResponse
		if err := json.Unmarshal(msg.Data, &resp); err != nil {
			return err
		}
		if !resp.Changed {
			fmt.Println("Nothing happened")
		}
	case ws.EventLeft:
		fmt.Println("Left the match")
	case ws.EventError:
		var resp models.ErrorResponse
		if err := json.Unmarshal(msg.Data, &resp); err != nil {
			return err
		}
		fmt.Println("Error:", resp.Error)
	default:
		return fmt.Errorf("unexpected event: %s", msg.Event)
	}
	return nil
}

func main() {
	verbose := flag.Bool("verbose", false, "log REST requests as curl commands")
	flag.Parse()

	config.SetLogLevel()
	cfg := config.LoadClientConfig()

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	session, err := client.Dial(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to connect", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	api := client.NewAPIClient(cfg, *verbose)

	// The receiving goroutine owns the view.
	view := &client.View{}
	done := make(chan struct{})
	go receive(session, view, done)

	printLines(client.Usage)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := client.ParseCommand(line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		switch cmd.Name {
		case client.CommandQuit:
			return
		case client.CommandHelp:
			printLines(client.Usage)
			continue
		case client.CommandLobby:
			matches, err := api.GetLobby()
			if err != nil {
				fmt.Println(err)
				continue
			}
			printMatches(matches)
			continue
		}

		if _, err := session.Send(cmd.Event, cmd.Data); err != nil {
			slog.Error("Failed to send", "error", err)
			return
		}

		select {
		case <-done:
			slog.Error("Connection closed by server")
			return
		default:
		}
	}
}
