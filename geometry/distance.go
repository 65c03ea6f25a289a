package geometry

// Closest point queries after Ericson, Real-Time Collision Detection,
// sections 5.1.2, 5.1.5 and 5.1.6.

// ClosestPointSegment returns the point on segment ab nearest to p.
func ClosestPointSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	l2 := ab.SquaredNorm()
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a.Add(ab.Scale(t))
}

func SquaredDistanceSegment(p, a, b Point) float64 {
	return p.SquaredDistance(ClosestPointSegment(p, a, b))
}

// ClosestPointTriangle returns the point on triangle abc nearest to p by
// walking the Voronoi regions of the vertices, then the edges, then the
// face.
func ClosestPointTriangle(p, a, b, c Point) Point {
	var (
		ab = b.Sub(a)
		ac = c.Sub(a)
		ap = p.Sub(a)
		d1 = ab.Dot(ap)
		d2 = ac.Dot(ap)
	)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1. / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

func SquaredDistanceTriangle(p, a, b, c Point) float64 {
	return p.SquaredDistance(ClosestPointTriangle(p, a, b, c))
}

// PointOutsideOfPlane reports whether p and d lie strictly on opposite
// sides of the plane through a, b and c.
func PointOutsideOfPlane(p, a, b, c, d Point) bool {
	v := b.Sub(a).Cross(c.Sub(a))
	signp := v.Dot(p.Sub(a))
	signd := v.Dot(d.Sub(a))
	return signp*signd < 0
}
