package randomizer

// Randomizer предоставляет детерминированный поток псевдослучайных чисел.
type Randomizer interface {
	// Float64 возвращает число в [0, 1).
	Float64() float64
	// Intn возвращает число в [0, n). Для n <= 0 возвращает 0.
	Intn(n int) int
}
