package models

// Position is the clock's top-left offset on the pixel plane. It is never
// persisted and starts at the origin.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the zero position
var Origin = Position{}
