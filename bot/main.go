// chompbot plays Chomping Glass, a 5x8 Chomp variant with a poison glass
// at the bottom-right corner, against a board server. The solver plays
// perfectly from a precomputed classification of the whole state space.
package main

import (
	"flag"
	"log"
	"time"
)

var (
	flagServe         = flag.Bool("serve", false, "Run the practice server instead of the bot")
	flagAddr          = flag.String("addr", "", "Practice server listen address (default from config)")
	flagServer        = flag.String("server", "", "Board server base URL (default from config)")
	flagAutoplay      = flag.Bool("autoplay", false, "Keep playing until the game ends")
	flagWatch         = flag.Bool("watch", false, "Show a live view of the board")
	flagIntervalMs    = flag.Int("interval_ms", 0, "Delay between autoplay moves in milliseconds")
	flagMaxMoves      = flag.Int("max_moves", 0, "Autoplay move cap")
	flagInitIfMissing = flag.Bool("init_if_missing", true, "Open a new game when none exists")
	flagReset         = flag.Bool("reset", false, "Cash out any running game before playing")
	flagRow           = flag.Int("r", 0, "Row for an explicit single move (1-5)")
	flagCol           = flag.Int("c", 0, "Column for an explicit single move (1-8)")
	flagCashOut       = flag.Bool("cash_out", false, "Send the cash-out move (0,0)")
	flagSaveConfig    = flag.Bool("save_config", false, "Write the active config to the XDG config dir and exit")
)

func main() {
	flag.Parse()
	cfg := InitConfig()
	if *flagAddr != "" {
		cfg.ListenAddr = *flagAddr
	}
	if *flagServer != "" {
		cfg.ServerURL = *flagServer
	}
	if *flagIntervalMs > 0 {
		cfg.IntervalMs = *flagIntervalMs
	}
	if *flagMaxMoves > 0 {
		cfg.MaxMoves = *flagMaxMoves
	}
	cfg.InitIfMissing = *flagInitIfMissing
	configStore.Update(cfg)

	if *flagSaveConfig {
		if err := SaveConfig(); err != nil {
			log.Fatalf("[config] save failed: %v", err)
		}
		log.Printf("[config] saved")
		return
	}

	if *flagServe {
		if err := runServer(cfg); err != nil {
			log.Fatalf("[server] %v", err)
		}
		return
	}

	client := NewGameClient(cfg.ServerURL, time.Duration(cfg.RequestTimeoutMs)*time.Millisecond)

	if *flagWatch {
		if err := runWatch(client, cfg); err != nil {
			log.Fatalf("[bot] watch failed: %v", err)
		}
		return
	}

	if *flagReset {
		if err := runReset(client); err != nil {
			log.Fatalf("[bot] reset failed: %v", err)
		}
	}

	solver := NewSolver(LoadedBook())
	log.Printf("[bot] starting; autoplay=%t, single-move=%t", *flagAutoplay, !*flagAutoplay)

	if *flagAutoplay {
		if err := runAutoplay(solver, client, client, cfg); err != nil {
			log.Fatalf("[bot] autoplay failed: %v", err)
		}
		return
	}

	var explicit *Move
	if *flagRow != 0 || *flagCol != 0 {
		move := Move{Row: *flagRow, Col: *flagCol}
		if !move.InDomain() || move.IsCashOut() {
			log.Fatalf("[bot] explicit move %s out of domain", move)
		}
		explicit = &move
	}
	if err := runSingleMove(solver, client, client, cfg, explicit, *flagCashOut); err != nil {
		log.Fatalf("[bot] single move failed: %v", err)
	}
}
