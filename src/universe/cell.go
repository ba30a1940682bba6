package universe

//Cell is the state of one grid square
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Opposite returns the other state
func (c Cell) Opposite() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}
