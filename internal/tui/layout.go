package tui

// Screen geometry in terminal cells. View draws with these numbers and mouse clicks are
// resolved against them, so the two always agree.
const (
	boardTop  = 2
	boardLeft = 2

	cellWidth  = 7
	cellHeight = 3

	// one separator column or row between cells
	colStride = cellWidth + 1
	rowStride = cellHeight + 1

	boardHeight = 3*cellHeight + 2

	statusRow  = boardTop + boardHeight + 1
	restartRow = statusRow + 1

	restartLabel = "[ Restart ]"
)

// cellAt returns the board index under the terminal position, or -1 for anything else.
func cellAt(x, y int) int {
	dx, dy := x-boardLeft, y-boardTop
	if dx < 0 || dy < 0 {
		return -1
	}

	if dx%colStride == cellWidth || dy%rowStride == cellHeight {
		return -1
	}

	col, row := dx/colStride, dy/rowStride
	if col > 2 || row > 2 {
		return -1
	}

	return row*3 + col
}

func onRestart(x, y int) bool {
	return y == restartRow && x >= boardLeft && x < boardLeft+len(restartLabel)
}
