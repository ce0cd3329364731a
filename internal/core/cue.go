package core

// Cue is a presentational event raised by a game tick.
// Frontends may turn cues into sounds or flashes; games never depend on them.
type Cue uint8

const (
	CueNone Cue = iota
	CueSpawn
	CueSettle
	CueLineClear
	CueOverflow
	CueJump
	CueCrushed
	CueFailed
	CueVictory
)

// String returns a short name for the cue.
func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueSettle:
		return "settle"
	case CueLineClear:
		return "line_clear"
	case CueOverflow:
		return "overflow"
	case CueJump:
		return "jump"
	case CueCrushed:
		return "crushed"
	case CueFailed:
		return "failed"
	case CueVictory:
		return "victory"
	default:
		return "none"
	}
}
