package core

// Color is a semantic foreground color for a screen cell. The platform maps
// each value to a terminal color; games never see ANSI codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorDirt
	ColorRock
	ColorGem
	ColorExit
	ColorExitOpen
	ColorPlayer
	ColorEnemy
	ColorHUD
	ColorAccent
	ColorAlert
	ColorMuted
)
