package render

import (
	"math"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/geometry"
	"github.com/matzehuels/truchet/pkg/errors"
)

// Scene is everything a renderer needs to produce one image.
type Scene struct {
	Width        int
	Height       int
	Rotation     float64 // degrees, clockwise on screen, about the canvas centre
	Background   string
	Instructions []draw.Instruction
}

// Validate checks the canvas size.
func (s Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas must be positive, got %dx%d", s.Width, s.Height)
	}
	return nil
}

// Center returns the canvas centre in canvas coordinates.
func (s Scene) Center() geometry.Point {
	return geometry.Pt(float64(s.Width)/2, float64(s.Height)/2)
}

// Radians returns the rotation in radians.
func (s Scene) Radians() float64 {
	return s.Rotation * math.Pi / 180
}

// Project maps a pattern-space point onto the canvas.
func (s Scene) Project(p geometry.Point) geometry.Point {
	return geometry.Rotate(p, s.Radians()).Plus(s.Center())
}
