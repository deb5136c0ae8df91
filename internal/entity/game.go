package entity

const (
	StatusLive  = "live"
	StatusWon   = "won"
	StatusDrawn = "drawn"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const BoardSize = 9

// OutcomeKind tells the shell what an accepted move did to the game.
type OutcomeKind string

const (
	OutcomeContinue OutcomeKind = "continue"
	OutcomeWin      OutcomeKind = "win"
	OutcomeDraw     OutcomeKind = "draw"
)

// winCombos are checked in this order: rows top to bottom, columns left to right, then diagonals.
var winCombos = [...][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome is the result of an accepted move.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner string      `json:"winner,omitempty"`
	Line   []int       `json:"line,omitempty"`
}

// Game is the whole state of one board: the cells, the player to move and whether moves are accepted.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Turn    string    `json:"player_turn"`
	Live    bool      `json:"live"`
	Winner  string    `json:"winner,omitempty"`
	WinLine []int     `json:"win_line,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:    id,
		Board: [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:  PlayerX,
		Live:  true,
	}
}

// PlaceMark puts the current player's mark into cell. The move is rejected, leaving the game
// untouched, when the game is over, the cell is out of range or the cell is already taken.
func (that *Game) PlaceMark(cell int) (Outcome, bool) {
	if !that.Live {
		return Outcome{}, false
	}

	if cell < 0 || cell >= len(that.Board) {
		return Outcome{}, false
	}

	if that.Board[cell] != EmptyCell {
		return Outcome{}, false
	}

	that.Board[cell] = that.Turn

	// a full board that also completes a line is a win
	if line, ok := that.CheckForWin(); ok {
		that.Live = false
		that.Winner = that.Turn
		that.WinLine = []int{line[0], line[1], line[2]}

		return Outcome{Kind: OutcomeWin, Winner: that.Winner, Line: []int{line[0], line[1], line[2]}}, true
	}

	if that.CheckForDraw() {
		that.Live = false

		return Outcome{Kind: OutcomeDraw}, true
	}

	that.Turn = toggleMark(that.Turn)

	return Outcome{Kind: OutcomeContinue}, true
}

// CheckForWin returns the first winning line fully owned by the player to move.
func (that *Game) CheckForWin() ([3]int, bool) {
	if that.Turn == EmptyCell {
		return [3]int{}, false
	}

	for _, combo := range winCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a == that.Turn && b == that.Turn && c == that.Turn {
			return combo, true
		}
	}

	return [3]int{}, false
}

// CheckForDraw reports whether every cell is filled. It does not look for a winner.
func (that *Game) CheckForDraw() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Game) Reset() {
	for i := range that.Board {
		that.Board[i] = EmptyCell
	}

	that.Turn = PlayerX
	that.Live = true
	that.Winner = ""
	that.WinLine = nil
}

func (that *Game) Status() string {
	switch {
	case that.Live:
		return StatusLive
	case that.Winner != "":
		return StatusWon
	default:
		return StatusDrawn
	}
}

func (that *Game) IsLive() bool {
	return that.Live
}

func (that *Game) IsWon() bool {
	return that.Status() == StatusWon
}

func (that *Game) IsDrawn() bool {
	return that.Status() == StatusDrawn
}

// Moves counts the filled cells.
func (that *Game) Moves() int {
	moves := 0
	for _, cell := range that.Board {
		if cell != EmptyCell {
			moves++
		}
	}

	return moves
}

// Clone returns a deep copy that shares nothing with the receiver.
func (that *Game) Clone() *Game {
	clone := *that
	if that.WinLine != nil {
		clone.WinLine = append([]int(nil), that.WinLine...)
	}

	return &clone
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
