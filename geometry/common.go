package geometry

const (
	EPS      = 3.e-16
	EPSLARGE = 1.e-14
)
