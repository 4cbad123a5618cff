package main

import (
	"strings"

	"github.com/fatih/color"

	"github.com/tabiya-engine/tabiya/internal/board"
)

var (
	lightSquare = color.New(color.BgWhite)
	darkSquare  = color.New(color.BgCyan)
	whitePiece  = color.New(color.FgHiWhite, color.Bold)
	blackPiece  = color.New(color.FgBlack, color.Bold)
	frameLabel  = color.New(color.Bold)
)

// render draws the position from White's point of view with colored squares.
func render(p *board.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(frameLabel.Sprintf(" %d ", rank+1))
		for file := 0; file <= 7; file++ {
			sq := board.SquareAt(file, rank)
			cell := " " + pieceGlyph(p.PieceAt(sq)) + " "
			if (file+rank)%2 == 0 {
				sb.WriteString(darkSquare.Sprint(cell))
			} else {
				sb.WriteString(lightSquare.Sprint(cell))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(frameLabel.Sprint("    a  b  c  d  e  f  g  h \n"))
	return sb.String()
}

func pieceGlyph(pc board.Piece) string {
	if pc == board.NoPiece {
		return " "
	}
	if pc.Color() == board.White {
		return whitePiece.Sprint(pc.String())
	}
	return blackPiece.Sprint(pc.String())
}
