package entity

// BoardSize is the fixed edge length of a gomoku board.
const BoardSize = 15

// WinLength is the minimum contiguous run required to score a round.
// Longer runs (overlines) also win and are reported in full.
const WinLength = 5

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack      // seat 0
	CellWhite      // seat 1
)

// Coord is a board coordinate serialized as a [row, col] pair.
type Coord [2]int

// Board is a row-major grid of cells. Its shape never changes; only the
// contents do.
type Board [BoardSize][BoardSize]Cell

// axes enumerates the four undirected line directions through a cell.
// The order is fixed: a stone completing two lines at once reports the
// first axis in this order.
var axes = [4][2]int{
	{1, 0},  // vertical
	{0, 1},  // horizontal
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// CellForSeat maps a seat index to the cell value its stones carry.
func CellForSeat(seat int) Cell {
	if seat == 0 {
		return CellBlack
	}
	return CellWhite
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Clear resets every cell to CellEmpty.
func (that *Board) Clear() {
	*that = Board{}
}

// FindWinLine reports the contiguous run of the mover's stones through
// (row, col) if its length reaches WinLength on any axis, or nil otherwise.
// The run is collected origin first, then the forward extension, then the
// backward extension.
func (that *Board) FindWinLine(row, col int, mover Cell) []Coord {
	for _, axis := range axes {
		dr, dc := axis[0], axis[1]
		line := []Coord{{row, col}}

		for r, c := row+dr, col+dc; that.InBounds(r, c) && that[r][c] == mover; r, c = r+dr, c+dc {
			line = append(line, Coord{r, c})
		}

		for r, c := row-dr, col-dc; that.InBounds(r, c) && that[r][c] == mover; r, c = r-dr, c-dc {
			line = append(line, Coord{r, c})
		}

		if len(line) >= WinLength {
			return line
		}
	}

	return nil
}
