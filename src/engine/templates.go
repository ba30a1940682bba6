package engine

//BuiltinTemplates are registered in every new Controller
var BuiltinTemplates = []Template{
	{"testSample1", "the test sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}},
	{"glider", "the smallest spaceship, moves one cell diagonally every 4 generations", parsePattern(1, 1,
		".O.",
		"..O",
		"OOO",
	)},
	{"blinker", "period 2 oscillator", parsePattern(1, 1,
		"OOO",
	)},
	{"toad", "period 2 oscillator", parsePattern(1, 1,
		".OOO",
		"OOO.",
	)},
	{"beacon", "period 2 oscillator", parsePattern(1, 1,
		"OO..",
		"OO..",
		"..OO",
		"..OO",
	)},
	{"pulsar", "period 3 oscillator, needs 15x15", parsePattern(1, 1,
		"..OOO...OOO..",
		".............",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		"..OOO...OOO..",
		".............",
		"..OOO...OOO..",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		".............",
		"..OOO...OOO..",
	)},
	{"gosperGun", "Gosper glider gun, needs 38x11", parsePattern(1, 1,
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	)},
}

//parsePattern converts rows of '.' and 'O' into x,y coordinates shifted by (dx, dy)
func parsePattern(dx int, dy int, rows ...string) [][]int {
	var coords [][]int
	for y, row := range rows {
		for x, ch := range row {
			if ch == 'O' {
				coords = append(coords, []int{x + dx, y + dy})
			}
		}
	}
	return coords
}
