package game

// resolveBids returns the unique highest bidder, or InvalidPlayer when two or
// more players share the highest bid. A shared top bid discards the point
// card; it is never split.
func resolveBids(bids []Action) Player {
	maxBid := Action(-1)
	numMax := 0
	winner := InvalidPlayer
	for p, bid := range bids {
		switch {
		case bid > maxBid:
			maxBid = bid
			numMax = 1
			winner = Player(p)
		case bid == maxBid:
			numMax++
		}
	}
	if numMax != 1 {
		return InvalidPlayer
	}
	return winner
}
