package board

import (
	"fmt"
	"strings"

	"github.com/domino14/klondike/cards"
)

// FillToken in a snapshot stands for every identity not listed elsewhere,
// face down, in catalog order.
const FillToken = "..."

// ToDisplayText renders the board one pile per line, bottom to top, with
// face-down cards bracketed:
//
//	Draw: [S3] [H9]
//	1: DK
//	2: [C4] H7
//
// ParseSnapshot reads the same format.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for _, p := range pileOrder {
		sb.WriteString(string(p))
		sb.WriteString(":")
		for _, c := range b.Pile(p) {
			sb.WriteString(" ")
			sb.WriteString(c.Code(true))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}

type snapshotLine struct {
	pile   PileName
	tokens []string
}

// ParseSnapshot builds a board from its textual form. Piles may appear in
// any order, and missing piles are empty. Blank lines and lines starting
// with # are ignored. A single FillToken may appear in any pile.
//
// The parsed board is resynced, so a bracketed card on top of a center pile
// comes out face up.
func ParseSnapshot(text string) (*Board, error) {
	var lines []snapshotLine
	seenPiles := map[PileName]bool{}
	fills := 0
	for lineno, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("line %d: missing ':' in %q", lineno+1, line)
		}
		p := PileName(strings.TrimSpace(name))
		if !p.Valid() {
			return nil, fmt.Errorf("line %d: unknown pile %q", lineno+1, name)
		}
		if seenPiles[p] {
			return nil, fmt.Errorf("line %d: pile %v listed twice", lineno+1, p)
		}
		seenPiles[p] = true
		tokens := strings.Fields(rest)
		for _, t := range tokens {
			if t == FillToken {
				fills++
			}
		}
		lines = append(lines, snapshotLine{pile: p, tokens: tokens})
	}
	if fills > 1 {
		return nil, fmt.Errorf("%q may appear only once", FillToken)
	}

	listed := map[cards.Identity]bool{}
	parsed := make([][]*Card, len(lines))
	for i, l := range lines {
		for _, t := range l.tokens {
			if t == FillToken {
				parsed[i] = append(parsed[i], nil)
				continue
			}
			c, err := parseCode(t)
			if err != nil {
				return nil, fmt.Errorf("pile %v: %w", l.pile, err)
			}
			listed[c.id] = true
			parsed[i] = append(parsed[i], c)
		}
	}

	b := NewBoard()
	for i, l := range lines {
		for _, c := range parsed[i] {
			if c != nil {
				b.Push(l.pile, c)
				continue
			}
			for _, id := range cards.All() {
				if listed[id] {
					continue
				}
				fc := NewCard(id)
				fc.facedown = true
				b.Push(l.pile, fc)
			}
		}
	}
	b.ResyncAll()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// MustParseSnapshot is ParseSnapshot for test fixtures.
func MustParseSnapshot(text string) *Board {
	b, err := ParseSnapshot(text)
	if err != nil {
		panic(err)
	}
	return b
}

func parseCode(code string) (*Card, error) {
	facedown := false
	if strings.HasPrefix(code, "[") {
		if !strings.HasSuffix(code, "]") {
			return nil, fmt.Errorf("unterminated bracket in %q", code)
		}
		code = code[1 : len(code)-1]
		facedown = true
	}
	id, err := cards.Parse(code)
	if err != nil {
		return nil, err
	}
	c := NewCard(id)
	c.facedown = facedown
	return c, nil
}
