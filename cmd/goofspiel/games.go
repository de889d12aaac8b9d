package main

import (
	"fmt"
	"sort"

	"github.com/lox/goofspiel/registry"
)

// GamesCmd lists the registry.
type GamesCmd struct{}

func (c *GamesCmd) Run() error {
	reg := registry.Builtin()
	for _, name := range reg.Names() {
		e, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Println(HeaderStyle.Render(e.LongName) + " " + name)

		params := make([]string, 0, len(e.Defaults))
		for p := range e.Defaults {
			params = append(params, p)
		}
		sort.Strings(params)
		for _, p := range params {
			fmt.Printf("  %s %s\n", LabelStyle.Render(p), e.Defaults[p])
		}
	}
	return nil
}
