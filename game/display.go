package game

import (
	"fmt"
	"strings"
)

// ToDisplayText shows the board with the game state below it.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	fmt.Fprintf(&sb, "\nGame %s, turn %d of %d: %v\n", g.name, g.turnnum, g.turnLimit, g.outcome)
	fmt.Fprintf(&sb, "Face down: %d\n", g.board.NumFacedown())
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		fmt.Fprintf(&sb, "Last turn: %s\n", last.Chain)
	}
	return sb.String()
}

// HistoryText lists the turns played so far.
func (g *Game) HistoryText() string {
	var sb strings.Builder
	for _, r := range g.history {
		fmt.Fprintf(&sb, "%3d. [%d of %d, %d critical, %d face down] %s\n",
			r.Turn, r.Moves, r.Options, r.Critical, r.Facedown, r.Chain)
	}
	return sb.String()
}
