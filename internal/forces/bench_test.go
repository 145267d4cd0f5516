package forces

import (
	"testing"

	"github.com/san-kum/spheremd/internal/cells"
)

func BenchmarkBrute(b *testing.B) {
	sys := randomSystem(1000, 1)
	var stats Stats

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.ResetAccel()
		stats.Reset()
		if err := Brute(sys, 0, len(sys), 0.2, 0.1, &stats); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCells(b *testing.B) {
	sys := randomSystem(1000, 1)
	grid := cells.NewGrid(10)
	var stats Stats

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.ResetAccel()
		stats.Reset()
		grid.Populate(sys)
		if err := Cells(sys, grid, 0, grid.NumCells(), 0.2, 0.1, &stats); err != nil {
			b.Fatal(err)
		}
	}
}
