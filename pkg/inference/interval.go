package inference

// Interval is a two-sided interval estimate at nominal coverage Level (1-alpha).
type Interval struct {
	Lower float64
	Upper float64
	Level float64
}

func symmetric(center, margin, alpha float64) Interval {
	return Interval{Lower: center - margin, Upper: center + margin, Level: 1 - alpha}
}

// Contains reports whether x lies in the closed interval.
func (i Interval) Contains(x float64) bool {
	return i.Lower <= x && x <= i.Upper
}

func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}
