// Package plotter walks a cascaded SVG element tree and produces the
// motion commands driving a pen plotter or single-wall printer: Travel
// moves with the tool up, Extrude draws a straight line of a given
// width. All coordinates are millimeters in device space.
package plotter

import "iter"

// Command is one primitive motion of the tool head, either Travel or
// Extrude.
type Command interface {
	isCommand()
}

// Travel repositions the tool to (X, Y) without drawing.
type Travel struct {
	X, Y float64
}

// Extrude draws a straight line from the current position to (X, Y)
// with the given line width.
type Extrude struct {
	X, Y  float64
	Width float64
}

func (Travel) isCommand()  {}
func (Extrude) isCommand() {}

// Stream is a lazy sequence of motion commands. Commands are computed
// on demand; abandoning the iteration mid-stream discards the rest of
// the document walk.
type Stream = iter.Seq[Command]
