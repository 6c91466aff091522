// gandalf-sim runs headless bot-only rounds against the rules engine.
// Useful for eyeballing bot behavior and checking that rounds terminate.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zaid5678/gandalf/engine"
)

func main() {
	var (
		players = flag.Int("players", 3, "number of bots (2-6)")
		rounds  = flag.Int("rounds", 1, "rounds to play")
		seed    = flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
		jokers  = flag.Bool("jokers", false, "include two jokers")
		verbose = flag.Bool("v", false, "log every turn")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *players < 2 || *players > engine.MaxPlayers {
		log.Fatalf("players must be 2-%d", engine.MaxPlayers)
	}

	rules := engine.DefaultRules()
	rules.NumPlayers = uint8(*players)
	if *jokers {
		rules.NumJokers = 2
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	g := engine.NewGame(*seed, rules)
	g.Deal()
	log.WithFields(logrus.Fields{"players": *players, "seed": *seed}).Info("simulation started")

	for r := 0; r < *rounds; r++ {
		for !g.IsRoundOver() {
			s, err := g.BotTakeTurn()
			if err != nil {
				log.WithError(err).Fatal("bot turn failed")
			}
			log.WithFields(logrus.Fields{
				"player": s.Player,
				"drawn":  s.Drawn.Value(),
				"played": s.Played,
				"called": s.CalledGandalf,
			}).Debug("turn")
		}

		res, err := g.EndRound()
		if err != nil {
			log.WithError(err).Fatal("scoring failed")
		}
		log.WithFields(logrus.Fields{
			"round":   r + 1,
			"winners": fmt.Sprintf("%b", res.Winners),
			"caller":  res.Caller,
			"penalty": res.Penalty,
		}).Info("round ended")

		if r+1 < *rounds {
			if err := g.NextRound(); err != nil {
				log.WithError(err).Fatal("re-deal failed")
			}
		}
	}

	for p := 0; p < *players; p++ {
		fmt.Printf("player %d: %d points\n", p, g.Players[p].Score)
	}
}
