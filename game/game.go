package game

import (
	"fmt"
	"math"
)

// Player is a player index, or one of the special player ids below.
type Player int

// Special player ids returned by State.CurrentPlayer.
const (
	ChancePlayerID       Player = -1
	SimultaneousPlayerID Player = -2
	InvalidPlayer        Player = -3
	TerminalPlayerID     Player = -4
)

// Action is a card index for player and chance moves, or a flat joint action
// index at simultaneous nodes.
type Action int

// Dynamics describes how players take turns.
type Dynamics uint8

const (
	DynamicsSequential Dynamics = iota
	DynamicsSimultaneous
)

// ChanceMode describes how chance is modelled.
type ChanceMode uint8

const (
	ChanceModeDeterministic ChanceMode = iota
	ChanceModeExplicitStochastic
)

// Information describes what players can observe.
type Information uint8

const (
	InformationPerfect Information = iota
	InformationImperfect
)

func (i Information) String() string {
	if i == InformationImperfect {
		return "imperfect"
	}
	return "perfect"
}

// Utility describes the sum structure of returns.
type Utility uint8

const (
	UtilityZeroSum Utility = iota
	UtilityGeneralSum
)

func (u Utility) String() string {
	if u == UtilityGeneralSum {
		return "general-sum"
	}
	return "zero-sum"
}

// RewardModel describes when rewards are paid.
type RewardModel uint8

const (
	RewardModelTerminal RewardModel = iota
	RewardModelRewards
)

// GameType is the static description of a configured game.
type GameType struct {
	ShortName   string
	LongName    string
	Dynamics    Dynamics
	ChanceMode  ChanceMode
	Information Information
	Utility     Utility
	RewardModel RewardModel
	MinPlayers  int
	MaxPlayers  int
}

// Game is an immutable game configuration. It is safe to share across
// goroutines; every State created from it holds a read-only reference.
type Game struct {
	params     Params
	numCards   int
	numPlayers int
	order      PointsOrder
	returns    ReturnsType
	impInfo    bool
	gameType   GameType

	defaultObserver   *Observer
	infoStateObserver *Observer
	publicObserver    *Observer
	privateObserver   *Observer
}

// New validates params and builds a game. Any configuration error aborts
// construction.
func New(params Params) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	order, _ := ParsePointsOrder(params.PointsOrder)
	returns, _ := ParseReturnsType(params.ReturnsType)

	g := &Game{
		params:     params,
		numCards:   params.NumCards,
		numPlayers: params.Players,
		order:      order,
		returns:    returns,
		impInfo:    params.ImpInfo,
		gameType: GameType{
			ShortName:   "goofspiel",
			LongName:    "Goofspiel",
			Dynamics:    DynamicsSimultaneous,
			ChanceMode:  ChanceModeExplicitStochastic,
			Information: InformationPerfect,
			Utility:     returns.Utility(),
			RewardModel: RewardModelTerminal,
			MinPlayers:  MinPlayers,
			MaxPlayers:  MaxPlayers,
		},
	}
	if params.ImpInfo {
		g.gameType.Information = InformationImperfect
	}

	g.defaultObserver = NewObserver(DefaultObservation)
	g.infoStateObserver = NewObserver(InfoStateObservation)
	g.publicObserver = NewObserver(PublicObservation)
	g.privateObserver = NewObserver(PrivateObservation)
	return g, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(params Params) *Game {
	g, err := New(params)
	if err != nil {
		panic(err)
	}
	return g
}

// NewFromMap builds a game from raw name/value parameters.
func NewFromMap(raw map[string]string) (*Game, error) {
	params, err := ParamsFromMap(raw)
	if err != nil {
		return nil, err
	}
	return New(params)
}

func (g *Game) Params() Params           { return g.params }
func (g *Game) Type() GameType           { return g.gameType }
func (g *Game) NumPlayers() int          { return g.numPlayers }
func (g *Game) NumCards() int            { return g.numCards }
func (g *Game) NumRounds() int           { return g.numCards }
func (g *Game) MaxGameLength() int       { return g.numCards }
func (g *Game) NumDistinctActions() int  { return g.numCards }
func (g *Game) PointsOrder() PointsOrder { return g.order }
func (g *Game) ReturnsType() ReturnsType { return g.returns }
func (g *Game) IsImpInfo() bool          { return g.impInfo }

// MaxChanceOutcomes is the number of distinct chance outcomes, zero when the
// point card order is deterministic.
func (g *Game) MaxChanceOutcomes() int {
	if g.order.IsRandom() {
		return g.numCards
	}
	return 0
}

// MaxPointSlots is the number of distinct point totals a player can hold,
// 0 through 1+2+...+N.
func (g *Game) MaxPointSlots() int {
	return totalPoints(g.numCards) + 1
}

// MinUtility is the smallest value any entry of Returns can take.
func (g *Game) MinUtility() float64 {
	return g.returns.minUtility(g.numCards, g.numPlayers)
}

// MaxUtility is the largest value any entry of Returns can take.
func (g *Game) MaxUtility() float64 {
	return g.returns.maxUtility(g.numCards, g.numPlayers)
}

// UtilitySum is the constant sum of returns. ok is false for general-sum
// games.
func (g *Game) UtilitySum() (sum float64, ok bool) {
	if g.gameType.Utility == UtilityGeneralSum {
		return math.NaN(), false
	}
	return 0, true
}

// NewInitialState starts a new play-through.
func (g *Game) NewInitialState() *State {
	return newState(g)
}

func (g *Game) DefaultObserver() *Observer   { return g.defaultObserver }
func (g *Game) InfoStateObserver() *Observer { return g.infoStateObserver }
func (g *Game) PublicObserver() *Observer    { return g.publicObserver }
func (g *Game) PrivateObserver() *Observer   { return g.privateObserver }

// ObservationTensorShape is the shape written by State.ObservationTensor.
func (g *Game) ObservationTensorShape() []int {
	return g.defaultObserver.TensorShape(g)
}

// ObservationTensorSize is the flat length of ObservationTensorShape.
func (g *Game) ObservationTensorSize() int {
	return g.defaultObserver.TensorSize(g)
}

// InformationStateTensorShape is the shape written by
// State.InformationStateTensor.
func (g *Game) InformationStateTensorShape() []int {
	return g.infoStateObserver.TensorShape(g)
}

// InformationStateTensorSize is the flat length of
// InformationStateTensorShape.
func (g *Game) InformationStateTensorSize() int {
	return g.infoStateObserver.TensorSize(g)
}

func (g *Game) String() string {
	return g.params.String()
}

func (g *Game) checkPlayer(p Player) {
	if p < 0 || int(p) >= g.numPlayers {
		panic(fmt.Sprintf("goofspiel: player %d out of range [0, %d)", p, g.numPlayers))
	}
}
