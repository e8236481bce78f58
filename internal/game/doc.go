// Package game implements the blackjack round engine.
//
// The main type is Game, which owns the shoe, the dealer, the seated players
// and the ever-growing round trace. Each call to RunRound plays one complete
// round: reset, shoe check, betting, initial deal, player turns, dealer turn,
// settlement and trace capture, strictly in that order.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    game.NewPlayer("Alice", 300, strategy.NewBasic()),
//	}
//	g, err := game.NewGame(players, game.DefaultConfig(), game.WithRNG(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	summary, err := g.RunSimulation(200)
//
// # Strategies
//
// Players delegate betting and play decisions to a Strategy. Strategies only
// ever see a TableView value and a clone of the hand being played; every raw
// decision passes through NormalizeDecision before the engine applies it, so
// an illegal split or double down degrades to a hit instead of corrupting the
// round.
//
// # Deterministic Testing
//
// Inject a seeded RNG with WithRNG, or a pre-arranged shoe with WithShoe:
//
//	shoe := deck.NewStackedShoe(deck.MustParseCards("AsKd9c7h")...)
//	g, _ := game.NewGame(players, cfg, game.WithShoe(shoe))
//
// A Game is not safe for concurrent use. Independent games share nothing and
// may run on separate goroutines.
package game
