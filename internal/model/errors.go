package model

import "fmt"

// NoFitForCutPieceError is returned when a demand piece cannot be placed on
// any available stock piece, either because no stock entry is large or
// compatible enough, or because stock quantity ran out before every demand
// piece could be placed. It always carries exactly one offending piece.
type NoFitForCutPieceError struct {
	Piece DemandPiece
}

func (e *NoFitForCutPieceError) Error() string {
	return fmt.Sprintf("no fit for cut piece %dx%d (external_id=%q)", e.Piece.Width, e.Piece.Length, e.Piece.ExternalID)
}
