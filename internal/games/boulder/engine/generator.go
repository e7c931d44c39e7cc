package engine

// Level dimensions and fixed positions.
const (
	Width  = 16
	Height = 12
)

// Spawn and exit positions of every generated level.
var (
	SpawnPos = Coord{X: 1, Y: 1}
	ExitPos  = Coord{X: Width - 2, Y: Height - 2}
)

// threshold maps the upper bound of a PRNG draw to the kind it produces.
type threshold struct {
	below float64
	kind  Kind
}

// interiorTable is checked in order; draws at or above the last bound are Empty.
var interiorTable = []threshold{
	{0.10, KindWall},
	{0.25, KindRock},
	{0.35, KindGem},
	{0.80, KindDirt},
	{0.82, KindEnemy},
}

// KindForDraw maps one PRNG draw to an interior cell kind.
func KindForDraw(v float64) Kind {
	for _, t := range interiorTable {
		if v < t.below {
			return t.kind
		}
	}
	return KindEmpty
}

// Generate builds the level for seed. Border cells are walls, the player
// spawns at SpawnPos, a closed exit sits at ExitPos, and every other cell
// consumes one PRNG draw in row-major order.
//
// The gem count is not adjusted: a seed may produce fewer than GemsNeeded
// gems, in which case the level cannot be won.
func Generate(seed string) *Grid {
	rng := NewPRNG(seed)
	g := NewGrid(Width, Height)

	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			c := C(x, y)
			switch c {
			case SpawnPos:
				g.Set(c, KindPlayer)
			case ExitPos:
				g.Set(c, KindExit)
			default:
				g.Set(c, KindForDraw(rng.Next()))
			}
		}
	}
	g.DrainChanges()
	return g
}
