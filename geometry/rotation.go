package geometry

// Rotation indexes one of the 24 orientation-preserving cube rotations.
// The identity element is Rotation(0). Composition is a table lookup
// (see compositionTable), never a runtime matrix multiply.
type Rotation int

// Identity is the rotation that leaves every point fixed.
const Identity Rotation = 0

type matrix [3][3]int

var (
	rotationMatrices [24]matrix
	compositionTable [24][24]Rotation
	inverseTable     [24]Rotation

	// zAxisRotations holds the 4-element subgroup of rotations about the
	// z axis, used to restrict piece orientations in one-sided mode.
	zAxisRotations [4]Rotation
)

func init() {
	rotationMatrices = buildRotationMatrices()
	for a := Rotation(0); a < 24; a++ {
		for b := Rotation(0); b < 24; b++ {
			compositionTable[a][b] = findMatrix(multiply(rotationMatrices[a], rotationMatrices[b]))
		}
	}
	for a := Rotation(0); a < 24; a++ {
		for b := Rotation(0); b < 24; b++ {
			if compositionTable[a][b] == Identity {
				inverseTable[a] = b
				break
			}
		}
	}
	n := 0
	for r := Rotation(0); r < 24; r++ {
		m := rotationMatrices[r]
		// fixes z axis iff column mapping the z unit vector is +z.
		if m[0][2] == 0 && m[1][2] == 0 && m[2][2] == 1 {
			zAxisRotations[n] = r
			n++
		}
	}
	if n != 4 {
		panic("geometry: expected exactly 4 z-axis rotations")
	}
}

// buildRotationMatrices enumerates every signed permutation of the three
// axes and keeps the 24 with determinant +1 (the orientation-preserving
// subgroup of the cube's symmetry group), ordered deterministically.
func buildRotationMatrices() [24]matrix {
	var out [24]matrix
	n := 0
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	signs := [8][3]int{
		{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
		{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	}
	for _, perm := range perms {
		for _, sign := range signs {
			var m matrix
			for row := 0; row < 3; row++ {
				m[row][perm[row]] = sign[row]
			}
			if determinant(m) == 1 {
				out[n] = m
				n++
			}
		}
	}
	if n != 24 {
		panic("geometry: expected exactly 24 orientation-preserving rotations")
	}
	return out
}

func determinant(m matrix) int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func multiply(a, b matrix) matrix {
	var out matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func findMatrix(m matrix) Rotation {
	for r, candidate := range rotationMatrices {
		if candidate == m {
			return Rotation(r)
		}
	}
	panic("geometry: rotation product outside the 24-element group")
}

// Apply rotates p by r about the origin.
func (r Rotation) Apply(p Point) Point {
	m := rotationMatrices[r]
	return Point{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}

// Compose returns the rotation equivalent to applying r first, then s.
func (r Rotation) Compose(s Rotation) Rotation {
	return compositionTable[s][r]
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return inverseTable[r]
}

// All returns every rotation in the 24-element group, index order stable
// across runs (it is built from a deterministic enumeration, never RNG).
func All() []Rotation {
	out := make([]Rotation, 24)
	for i := range out {
		out[i] = Rotation(i)
	}
	return out
}

// ZAxisRotations returns the 4-element subgroup of z-axis-only rotations,
// used to restrict orientations in one-sided (2-D, zDim=1) mode.
func ZAxisRotations() []Rotation {
	return append([]Rotation(nil), zAxisRotations[:]...)
}

// axisSource returns, for output axis k, the input axis it reads from
// and the sign it applies (every row of a rotation matrix has exactly
// one nonzero entry, ±1).
func (r Rotation) axisSource(k int) (axis, sign int) {
	m := rotationMatrices[r]
	for j := 0; j < 3; j++ {
		if m[k][j] != 0 {
			return j, m[k][j]
		}
	}
	panic("geometry: malformed rotation matrix row")
}

// PreservesBox reports whether r maps a dims-sized box onto itself
// (each output axis's length equals the corresponding input axis's
// length it draws from), a prerequisite for rotating box coordinates
// in place rather than into a differently-shaped box.
func (r Rotation) PreservesBox(dims Point) bool {
	d := [3]int{dims.X, dims.Y, dims.Z}
	for k := 0; k < 3; k++ {
		axis, _ := r.axisSource(k)
		if d[axis] != d[k] {
			return false
		}
	}
	return true
}

// ApplyBox rotates p as a coordinate within a dims-sized box, mapping
// the box onto itself (caller must check PreservesBox first). A
// negative sign on an axis mirrors the coordinate about that axis's
// midline so the result stays within [0, dim).
func (r Rotation) ApplyBox(p Point, dims Point) Point {
	in := [3]int{p.X, p.Y, p.Z}
	d := [3]int{dims.X, dims.Y, dims.Z}
	var out [3]int
	for k := 0; k < 3; k++ {
		axis, sign := r.axisSource(k)
		if sign > 0 {
			out[k] = in[axis]
		} else {
			out[k] = d[axis] - 1 - in[axis]
		}
	}
	return Point{X: out[0], Y: out[1], Z: out[2]}
}
