package geometry

type BoundingBox struct {
	XMin, XMax Point
}

func NewBoundingBox(pts []Point) (Box *BoundingBox) {
	if len(pts) == 0 {
		return nil
	}
	Box = &BoundingBox{XMin: pts[0], XMax: pts[0]}
	for _, p := range pts[1:] {
		Box.Extend(p)
	}
	return Box
}

func (bb *BoundingBox) Extend(p Point) {
	if p.X < bb.XMin.X {
		bb.XMin.X = p.X
	}
	if p.Y < bb.XMin.Y {
		bb.XMin.Y = p.Y
	}
	if p.Z < bb.XMin.Z {
		bb.XMin.Z = p.Z
	}
	if p.X > bb.XMax.X {
		bb.XMax.X = p.X
	}
	if p.Y > bb.XMax.Y {
		bb.XMax.Y = p.Y
	}
	if p.Z > bb.XMax.Z {
		bb.XMax.Z = p.Z
	}
}

func (bb *BoundingBox) Centroid() Point {
	return bb.XMin.Add(bb.XMax).Scale(0.5)
}

// Scale grows or shrinks the box about its centroid.
func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	c := bb.Centroid()
	return &BoundingBox{
		XMin: bb.XMin.Sub(c).Scale(scale).Add(c),
		XMax: bb.XMax.Sub(c).Scale(scale).Add(c),
	}
}

// Contains is inclusive of the box boundary.
func (bb *BoundingBox) Contains(p Point) bool {
	return p.X >= bb.XMin.X && p.X <= bb.XMax.X &&
		p.Y >= bb.XMin.Y && p.Y <= bb.XMax.Y &&
		p.Z >= bb.XMin.Z && p.Z <= bb.XMax.Z
}

func (bb *BoundingBox) Diagonal() float64 {
	return bb.XMax.Distance(bb.XMin)
}
