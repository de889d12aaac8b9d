package game

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/goofspiel/cards"
)

// ErrInvalidConfig is wrapped by every configuration error returned from New.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Parameter names accepted by ParamsFromMap.
const (
	ParamNumCards    = "num_cards"
	ParamPlayers     = "players"
	ParamPointsOrder = "points_order"
	ParamReturnsType = "returns_type"
	ParamImpInfo     = "imp_info"
)

const (
	DefaultNumCards    = 13
	DefaultPlayers     = 2
	DefaultPointsOrder = "random"
	DefaultReturnsType = "win_loss"
	DefaultImpInfo     = false

	MinPlayers = 2
	MaxPlayers = 10
)

// Params are the named construction parameters of a game.
type Params struct {
	NumCards    int
	Players     int
	PointsOrder string
	ReturnsType string
	ImpInfo     bool
}

// DefaultParams returns the standard 13-card, two-player configuration.
func DefaultParams() Params {
	return Params{
		NumCards:    DefaultNumCards,
		Players:     DefaultPlayers,
		PointsOrder: DefaultPointsOrder,
		ReturnsType: DefaultReturnsType,
		ImpInfo:     DefaultImpInfo,
	}
}

// Map renders the parameters as name/value strings.
func (p Params) Map() map[string]string {
	return map[string]string{
		ParamNumCards:    strconv.Itoa(p.NumCards),
		ParamPlayers:     strconv.Itoa(p.Players),
		ParamPointsOrder: p.PointsOrder,
		ParamReturnsType: p.ReturnsType,
		ParamImpInfo:     strconv.FormatBool(p.ImpInfo),
	}
}

// String renders the parameters in a stable name=value form.
func (p Params) String() string {
	m := p.Map()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + m[name]
	}
	return "goofspiel(" + strings.Join(parts, ",") + ")"
}

// Validate checks ranges and enum values.
func (p Params) Validate() error {
	if p.NumCards < 1 || p.NumCards > cards.MaxCards {
		return fmt.Errorf("%w: %s must be in [1, %d], got %d", ErrInvalidConfig, ParamNumCards, cards.MaxCards, p.NumCards)
	}
	if p.Players < MinPlayers || p.Players > MaxPlayers {
		return fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrInvalidConfig, ParamPlayers, MinPlayers, MaxPlayers, p.Players)
	}
	if _, err := ParsePointsOrder(p.PointsOrder); err != nil {
		return err
	}
	if _, err := ParseReturnsType(p.ReturnsType); err != nil {
		return err
	}
	return nil
}

// ParamsFromMap overlays raw values onto DefaultParams. Unknown names and
// values that do not parse are configuration errors.
func ParamsFromMap(raw map[string]string) (Params, error) {
	p := DefaultParams()
	for name, value := range raw {
		var err error
		switch name {
		case ParamNumCards:
			p.NumCards, err = strconv.Atoi(value)
		case ParamPlayers:
			p.Players, err = strconv.Atoi(value)
		case ParamPointsOrder:
			p.PointsOrder = value
		case ParamReturnsType:
			p.ReturnsType = value
		case ParamImpInfo:
			p.ImpInfo, err = strconv.ParseBool(value)
		default:
			return Params{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
		}
		if err != nil {
			return Params{}, fmt.Errorf("%w: parameter %s=%q: %v", ErrInvalidConfig, name, value, err)
		}
	}
	return p, nil
}
