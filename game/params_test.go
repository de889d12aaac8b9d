package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, 13, p.NumCards)
	assert.Equal(t, 2, p.Players)
	assert.Equal(t, "random", p.PointsOrder)
	assert.Equal(t, "win_loss", p.ReturnsType)
	assert.False(t, p.ImpInfo)
	assert.Equal(t,
		"goofspiel(imp_info=false,num_cards=13,players=2,points_order=random,returns_type=win_loss)",
		p.String())
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero cards", func(p *Params) { p.NumCards = 0 }},
		{"too many cards", func(p *Params) { p.NumCards = 65 }},
		{"one player", func(p *Params) { p.Players = 1 }},
		{"too many players", func(p *Params) { p.Players = 11 }},
		{"unknown order", func(p *Params) { p.PointsOrder = "sideways" }},
		{"unknown returns", func(p *Params) { p.ReturnsType = "winner_takes_all" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultParams()
			tt.mutate(&p)

			_, err := New(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error %v should wrap ErrInvalidConfig", err)
			assert.Panics(t, func() { MustNew(p) })
		})
	}
}

func TestParamsBoundaries(t *testing.T) {
	t.Parallel()

	for _, p := range []Params{
		{NumCards: 1, Players: 2, PointsOrder: "random", ReturnsType: "win_loss"},
		{NumCards: 64, Players: 10, PointsOrder: "descending", ReturnsType: "total_points", ImpInfo: true},
	} {
		_, err := New(p)
		assert.NoError(t, err, p.String())
	}
}

func TestParamsFromMap(t *testing.T) {
	t.Parallel()

	p, err := ParamsFromMap(map[string]string{
		ParamNumCards:    "5",
		ParamPlayers:     "3",
		ParamPointsOrder: "ascending",
		ParamReturnsType: "point_difference",
		ParamImpInfo:     "true",
	})
	require.NoError(t, err)
	assert.Equal(t, Params{NumCards: 5, Players: 3, PointsOrder: "ascending", ReturnsType: "point_difference", ImpInfo: true}, p)

	roundTrip, err := ParamsFromMap(p.Map())
	require.NoError(t, err)
	assert.Equal(t, p, roundTrip)

	partial, err := ParamsFromMap(map[string]string{ParamNumCards: "4"})
	require.NoError(t, err)
	assert.Equal(t, 4, partial.NumCards)
	assert.Equal(t, DefaultPlayers, partial.Players)

	for _, raw := range []map[string]string{
		{"num_card": "4"},
		{ParamNumCards: "four"},
		{ParamImpInfo: "maybe"},
	} {
		_, err := ParamsFromMap(raw)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%v", raw)
	}

	_, err = NewFromMap(map[string]string{ParamPointsOrder: "shuffled"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
