package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"skirmish-server/internal/engine"
	"skirmish-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool info <file.skrp>")
			return
		}
		if err := info(os.Args[2]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "actions":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool actions <file.skrp>")
			return
		}
		if err := actions(os.Args[2]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "time":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool time <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).UTC().Format(time.RFC3339))
	default:
		printHelp()
	}
}

func info(path string) error {
	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("match:    %s\n", rs.MatchID)
	fmt.Printf("mode:     %s\n", rs.Mode)
	fmt.Printf("seed:     %d\n", rs.Seed.Seed)
	fmt.Printf("recorded: %s\n", time.Unix(rs.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("actions:  %d\n", len(rs.Actions))

	state, err := engine.Replay(*rs, engine.NewConfig())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	outcome := engine.ResolveOutcome(state)
	fmt.Printf("round:    %d (finished=%t winners=%v)\n", state.Round, outcome.Finished, outcome.Winners)
	for _, e := range state.OrderedEntities() {
		fmt.Printf("  %-20s hp %3d/%-3d ce %d\n", e.ID, e.Stats.Health, e.Stats.MaxHealth, e.CE.Current)
	}
	return nil
}

func actions(path string) error {
	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	for i, a := range rs.Actions {
		fmt.Printf("%3d  round %-3d %-8s %-20s %s\n", i, a.Round, a.Action, a.ActorID, a.Payload)
	}
	return nil
}

func printHelp() {
	fmt.Println(`Replay Tool - просмотр файлов .skrp
Commands:
  info <file>        - заголовок записи и итог пересимуляции
  actions <file>     - список записанных действий
  time <timestamp>   - преобразовать Unix время в читаемый формат`)
}
