package randomizer

import (
	"math"
	"unicode/utf16"
)

const (
	width       = 256
	mask        = width - 1
	chunks      = 6
	startDenom  = 281474976710656.0  // 256^6
	significand = 4503599627370496.0 // 2^52
	overflow    = 9007199254740992.0 // 2^53
)

// arc4 состояние RC4-генератора, из которого собираются дробные числа.
type arc4 struct {
	i, j int
	s    [width]int
}

type randomizerImpl struct {
	arc4 *arc4
}

// New создаёт генератор, полностью определяемый строкой seed.
// Последовательность совпадает с seedrandom (ARC4), которым пользовалась прежняя
// страница, поэтому исторические розыгрыши воспроизводятся без изменений.
// Генератор не потокобезопасен: создавайте отдельный экземпляр на каждый вызов.
func New(seed string) Randomizer {
	return &randomizerImpl{arc4: newARC4(mixKey(seed))}
}

// Float64 собирает 52 значащих бита из байтов ARC4.
func (r *randomizerImpl) Float64() float64 {
	n := float64(r.arc4.next(chunks))
	d := startDenom
	x := 0.0
	for n < significand {
		n = (n + x) * width
		d *= width
		x = float64(r.arc4.next(1))
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x = float64(uint32(x) >> 1)
	}
	return (n + x) / d
}

// Intn возвращает floor(Float64() * n).
func (r *randomizerImpl) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(math.Floor(r.Float64() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// mixKey раскладывает seed в ключ ARC4 по UTF-16 кодам символов.
func mixKey(seed string) []int {
	units := utf16.Encode([]rune(seed))
	size := len(units)
	if size > width {
		size = width
	}
	key := make([]int, size)
	smear := 0
	for j, u := range units {
		smear ^= key[mask&j] * 19
		key[mask&j] = mask & (smear + int(u))
	}
	return key
}

func newARC4(key []int) *arc4 {
	if len(key) == 0 {
		key = []int{0}
	}
	a := &arc4{}
	for i := range a.s {
		a.s[i] = i
	}
	j := 0
	for i := 0; i < width; i++ {
		t := a.s[i]
		j = mask & (j + key[i%len(key)] + t)
		a.s[i] = a.s[j]
		a.s[j] = t
	}
	// Первые 256 байт RC4 статистически слабые, отбрасываем их.
	a.next(width)
	return a
}

// next возвращает следующие count байт потока как одно big-endian число.
func (a *arc4) next(count int) uint64 {
	var r uint64
	i, j := a.i, a.j
	for ; count > 0; count-- {
		i = mask & (i + 1)
		t := a.s[i]
		j = mask & (j + t)
		a.s[i] = a.s[j]
		a.s[j] = t
		r = r*width + uint64(a.s[mask&(a.s[i]+a.s[j])])
	}
	a.i, a.j = i, j
	return r
}
