package main

import (
	"fmt"

	"github.com/signadot/roff-format/go-roff/libdiff"

	"github.com/fatih/color"
)

type Colors struct {
	Tag   func(...any) string
	Key   func(...any) string
	Type  func(...any) string
	Value func(...any) string
	Diff  map[libdiff.Op]func(...any) string
}

func NewColors() *Colors {
	c := &Colors{
		Tag:   enabled(color.RGB(74, 92, 138)).SprintFunc(),
		Key:   enabled(color.RGB(196, 96, 16)).SprintFunc(),
		Type:  enabled(color.RGB(128, 168, 196)).SprintFunc(),
		Value: enabled(color.RGB(128, 216, 236)).SprintFunc(),
		Diff: map[libdiff.Op]func(...any) string{
			libdiff.Equal:  colorDefault,
			libdiff.Delete: enabled(color.New(color.FgRed)).SprintFunc(),
			libdiff.Insert: enabled(color.New(color.FgGreen)).SprintFunc(),
		},
	}
	return c
}

func NoColors() *Colors {
	return &Colors{
		Tag:   colorDefault,
		Key:   colorDefault,
		Type:  colorDefault,
		Value: colorDefault,
		Diff: map[libdiff.Op]func(...any) string{
			libdiff.Equal:  colorDefault,
			libdiff.Delete: colorDefault,
			libdiff.Insert: colorDefault,
		},
	}
}

// enabled overrides color's own terminal detection, which only looks at
// stdout.
func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

func colorDefault(a ...any) string { return fmt.Sprint(a...) }
