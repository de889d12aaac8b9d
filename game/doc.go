// Package game implements Goofspiel, a simultaneous-move bidding card game.
//
// Every player holds cards 1..N. Each round a point card is revealed and
// all players bid one of their remaining cards at the same time. The unique
// highest bid wins the point card's value; when the top bid is shared nobody
// scores and the point card is discarded.
//
// # Basic Usage
//
// Build an immutable Game from parameters and drive a State through it:
//
//	g, err := game.New(game.Params{
//	    NumCards:    13,
//	    Players:     2,
//	    PointsOrder: "random",
//	    ReturnsType: "win_loss",
//	})
//	if err != nil {
//	    return err
//	}
//	s := g.NewInitialState()
//	for !s.IsTerminal() {
//	    if s.IsChanceNode() {
//	        s.ApplyAction(pick(s.ChanceOutcomes()))
//	        continue
//	    }
//	    s.ApplyActions([]game.Action{bid0, bid1})
//	}
//	returns := s.Returns()
//
// The last round is played by the engine as soon as it is reached, because
// chance and every player have exactly one choice left.
//
// # Observations
//
// An Observer renders a State for one player, as text and as a float32
// tensor written into a caller-owned buffer. Both forms are built from the
// same ObservationType flags, and the tensor layout depends only on the Game:
//
//	buf := make([]float32, g.InformationStateTensorSize())
//	s.InformationStateTensor(0, buf)
//
// # Concurrency
//
// A Game is safe to share. A State belongs to one goroutine; use Clone to
// branch a search tree.
package game
