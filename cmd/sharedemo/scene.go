package main

import (
	"fmt"

	"github.com/junioryono/gameshare"
)

type Engine struct {
	Power int
}

func NewEngine(power int) *Engine {
	return &Engine{Power: power}
}

type Weapon interface {
	Name() string
}

type Sword struct{}

func (Sword) Name() string { return "sword" }

type Bow struct{}

func (Bow) Name() string { return "bow" }

// Player is wired by tag.
type Player struct {
	Engine    *Engine `share:""`
	Primary   Weapon  `share:"Weapon, Primary"`
	Secondary Weapon  `share:"Weapon, Secondary"`
}

func (p *Player) String() string {
	return fmt.Sprintf("engine=%s primary=%s secondary=%s", power(p.Engine), name(p.Primary), name(p.Secondary))
}

// HUD is wired in code.
type HUD struct {
	lines []string
}

func (h *HUD) BindShared(b *gameshare.Bindings) {
	gameshare.BindFunc(b, "Engine", func(e *Engine) {
		h.lines = append(h.lines, "power "+power(e))
	}, gameshare.Implicit())
	gameshare.BindFunc(b, "Primary", func(w Weapon) {
		h.lines = append(h.lines, "holding "+w.Name())
	}, gameshare.KeyedOf[Weapon]("Primary"))
	// Must exist, but the HUD only reads it.
	gameshare.BindFunc[Weapon](b, "Secondary", nil, gameshare.KeyedOf[Weapon]("Secondary"))
}

func (h *HUD) String() string {
	return fmt.Sprintf("%v", h.lines)
}

// sources builds the discovery collaborators of the demo scene. Weapons
// whose sub key is in drop are left out.
func sources(power int, drop map[string]bool) ([]gameshare.Sharable, error) {
	engines := gameshare.NewDigPackage("engines")
	if err := engines.Container().Provide(func() int { return power }); err != nil {
		return nil, err
	}
	if err := engines.Provide(NewEngine); err != nil {
		return nil, err
	}

	var options []gameshare.PackageOption
	if !drop["Primary"] {
		options = append(options, gameshare.KeyedObject[Weapon](Sword{}, "Primary"))
	}
	if !drop["Secondary"] {
		options = append(options, gameshare.KeyedObject[Weapon](Bow{}, "Secondary"))
	}
	weapons := gameshare.NewPackage("weapons", options...)

	return []gameshare.Sharable{engines, weapons}, nil
}

func power(e *Engine) string {
	if e == nil {
		return "-"
	}
	return fmt.Sprint(e.Power)
}

func name(w Weapon) string {
	if w == nil {
		return "-"
	}
	return w.Name()
}
