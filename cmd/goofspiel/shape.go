package main

import (
	"fmt"

	"github.com/lox/goofspiel/game"
)

// ShapeCmd prints the tensor layout of every standard observer.
type ShapeCmd struct{}

func (c *ShapeCmd) Run(globals *Globals) error {
	e, err := globals.setup()
	if err != nil {
		return err
	}
	g := e.game

	fmt.Println(HeaderStyle.Render(g.String()))
	observers := []struct {
		name string
		obs  *game.Observer
	}{
		{"observation", g.DefaultObserver()},
		{"information state", g.InfoStateObserver()},
		{"public", g.PublicObserver()},
		{"private", g.PrivateObserver()},
	}
	for _, o := range observers {
		fmt.Printf("%s shape=%v size=%d\n", RoundStyle.Render(o.name), o.obs.TensorShape(g), o.obs.TensorSize(g))
		for _, b := range o.obs.Layout(g) {
			fmt.Printf("  %s offset=%-5d shape=%v\n", LabelStyle.Render(b.Name), b.Offset, b.Shape)
		}
	}
	return nil
}
