package domain

// Outcome is the judgement derived from final disc counts.
type Outcome uint8

const (
	Draw Outcome = iota
	WhiteWon
	BlackWon
)

func (o Outcome) String() string {
	switch o {
	case WhiteWon:
		return "WHITE WON"
	case BlackWon:
		return "BLACK WON"
	default:
		return "DRAW"
	}
}

// CountDiscs tallies the discs owned by each side.
func CountDiscs(b Board) (white, black int) {
	for y := range b {
		for x := range b[y] {
			switch b[y][x] {
			case White:
				white++
			case Black:
				black++
			}
		}
	}
	return white, black
}

// Judge labels a pair of disc counts.
func Judge(white, black int) Outcome {
	switch {
	case white == black:
		return Draw
	case white > black:
		return WhiteWon
	default:
		return BlackWon
	}
}
