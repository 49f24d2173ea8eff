package elements

/*
Reference prism, r and s span the unit triangle and t runs from -1 to 1

	           t
	           ^
	           |
	           3
	         ,/|`\
	       12  |  13
	     ,/    |    `\
	    4------14-----5
	    |      8      |
	    |    ,/|`\    |
	    |  ,/  |  `\  |
	    |,/    |    `\|
	   ,10     |     11
	 ,/ |      0      | \
	r   |    ,/ `\    |   s
	    |  ,6     `7  |
	    |,/         `\|
	    1------9------2

PRISM6 uses the vertices 0..5 only
*/

var prismOrigin = [3]float64{0, 0, -1}

var prismSegments = [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {0, 3}, {1, 4}, {2, 5}}

var prismVertices = [][3]float64{
	{0, 0, -1}, {1, 0, -1}, {0, 1, -1},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
}

func init() {
	register(newPrism6())
	register(newPrism15())
}

func newPrism6() *shapeSet {
	n := []basisFunc{
		func(r, s, t float64) float64 { return (t - 1) * (r + s - 1) / 2 },
		func(r, s, t float64) float64 { return -r * (t - 1) / 2 },
		func(r, s, t float64) float64 { return -s * (t - 1) / 2 },
		func(r, s, t float64) float64 { return -(t + 1) * (r + s - 1) / 2 },
		func(r, s, t float64) float64 { return r * (t + 1) / 2 },
		func(r, s, t float64) float64 { return s * (t + 1) / 2 },
	}
	dn := derivTable{
		{
			func(r, s, t float64) float64 { return (t - 1) / 2 },
			func(r, s, t float64) float64 { return (t - 1) / 2 },
			func(r, s, t float64) float64 { return (r + s - 1) / 2 },
		},
		{
			func(r, s, t float64) float64 { return (1 - t) / 2 },
			zero,
			func(r, s, t float64) float64 { return -r / 2 },
		},
		{
			zero,
			func(r, s, t float64) float64 { return (1 - t) / 2 },
			func(r, s, t float64) float64 { return -s / 2 },
		},
		{
			func(r, s, t float64) float64 { return -(t + 1) / 2 },
			func(r, s, t float64) float64 { return -(t + 1) / 2 },
			func(r, s, t float64) float64 { return -(r + s - 1) / 2 },
		},
		{
			func(r, s, t float64) float64 { return (t + 1) / 2 },
			zero,
			func(r, s, t float64) float64 { return r / 2 },
		},
		{
			zero,
			func(r, s, t float64) float64 { return (t + 1) / 2 },
			func(r, s, t float64) float64 { return s / 2 },
		},
	}
	// Every basis function is linear in each reference direction
	ddn := make(derivTable, len(n))
	for i := range ddn {
		ddn[i] = [3]basisFunc{zero, zero, zero}
	}
	return &shapeSet{
		elementType: PRISM6,
		order:       1,
		origin:      prismOrigin,
		nodes:       prismVertices,
		faces: [][]int{
			{0, 3, 4, 1},
			{0, 2, 5, 3},
			{1, 4, 5, 2},
			{3, 5, 4, 3},
			{0, 1, 2, 0},
		},
		segments: prismSegments,
		n:        n,
		derivs:   []derivTable{dn, ddn},
	}
}

func newPrism15() *shapeSet {
	n := []basisFunc{
		func(r, s, t float64) float64 { return -(t - 1) * (r + s - 1) * (2*r + 2*s + t) / 2 },
		func(r, s, t float64) float64 { return -r * (t - 1) * (2*r - t - 2) / 2 },
		func(r, s, t float64) float64 { return -s * (t - 1) * (2*s - t - 2) / 2 },
		func(r, s, t float64) float64 { return (t + 1) * (r + s - 1) * (2*r + 2*s - t) / 2 },
		func(r, s, t float64) float64 { return r * (t + 1) * (2*r + t - 2) / 2 },
		func(r, s, t float64) float64 { return s * (t + 1) * (2*s + t - 2) / 2 },
		func(r, s, t float64) float64 { return 2 * r * (t - 1) * (r + s - 1) },
		func(r, s, t float64) float64 { return 2 * s * (t - 1) * (r + s - 1) },
		func(r, s, t float64) float64 { return (t - 1) * (t + 1) * (r + s - 1) },
		func(r, s, t float64) float64 { return -2 * r * s * (t - 1) },
		func(r, s, t float64) float64 { return -r * (t - 1) * (t + 1) },
		func(r, s, t float64) float64 { return -s * (t - 1) * (t + 1) },
		func(r, s, t float64) float64 { return -2 * r * (t + 1) * (r + s - 1) },
		func(r, s, t float64) float64 { return -2 * s * (t + 1) * (r + s - 1) },
		func(r, s, t float64) float64 { return 2 * r * s * (t + 1) },
	}
	dn := derivTable{
		{ // 0
			func(r, s, t float64) float64 { return -(t-1)*(r+s-1) - (t-1)*(2*r+2*s+t)/2 },
			func(r, s, t float64) float64 { return -(t-1)*(r+s-1) - (t-1)*(2*r+2*s+t)/2 },
			func(r, s, t float64) float64 { return -(t-1)*(r+s-1)/2 - (r+s-1)*(2*r+2*s+t)/2 },
		},
		{ // 1
			func(r, s, t float64) float64 { return -r*(t-1) - (t-1)*(2*r-t-2)/2 },
			zero,
			func(r, s, t float64) float64 { return r*(t-1)/2 - r*(2*r-t-2)/2 },
		},
		{ // 2
			zero,
			func(r, s, t float64) float64 { return -s*(t-1) - (t-1)*(2*s-t-2)/2 },
			func(r, s, t float64) float64 { return s*(t-1)/2 - s*(2*s-t-2)/2 },
		},
		{ // 3
			func(r, s, t float64) float64 { return (t+1)*(r+s-1) + (t+1)*(2*r+2*s-t)/2 },
			func(r, s, t float64) float64 { return (t+1)*(r+s-1) + (t+1)*(2*r+2*s-t)/2 },
			func(r, s, t float64) float64 { return -(t+1)*(r+s-1)/2 + (r+s-1)*(2*r+2*s-t)/2 },
		},
		{ // 4
			func(r, s, t float64) float64 { return r*(t+1) + (t+1)*(2*r+t-2)/2 },
			zero,
			func(r, s, t float64) float64 { return r*(t+1)/2 + r*(2*r+t-2)/2 },
		},
		{ // 5
			zero,
			func(r, s, t float64) float64 { return s*(t+1) + (t+1)*(2*s+t-2)/2 },
			func(r, s, t float64) float64 { return s*(t+1)/2 + s*(2*s+t-2)/2 },
		},
		{ // 6
			func(r, s, t float64) float64 { return 2*r*(t-1) + 2*(t-1)*(r+s-1) },
			func(r, s, t float64) float64 { return 2 * r * (t - 1) },
			func(r, s, t float64) float64 { return 2 * r * (r + s - 1) },
		},
		{ // 7
			func(r, s, t float64) float64 { return 2 * s * (t - 1) },
			func(r, s, t float64) float64 { return 2*s*(t-1) + 2*(t-1)*(r+s-1) },
			func(r, s, t float64) float64 { return 2 * s * (r + s - 1) },
		},
		{ // 8
			func(r, s, t float64) float64 { return (t - 1) * (t + 1) },
			func(r, s, t float64) float64 { return (t - 1) * (t + 1) },
			func(r, s, t float64) float64 { return 2 * t * (r + s - 1) },
		},
		{ // 9
			func(r, s, t float64) float64 { return -2 * s * (t - 1) },
			func(r, s, t float64) float64 { return -2 * r * (t - 1) },
			func(r, s, t float64) float64 { return -2 * r * s },
		},
		{ // 10
			func(r, s, t float64) float64 { return -(t - 1) * (t + 1) },
			zero,
			func(r, s, t float64) float64 { return -2 * r * t },
		},
		{ // 11
			zero,
			func(r, s, t float64) float64 { return -(t - 1) * (t + 1) },
			func(r, s, t float64) float64 { return -2 * s * t },
		},
		{ // 12
			func(r, s, t float64) float64 { return -2*r*(t+1) - 2*(t+1)*(r+s-1) },
			func(r, s, t float64) float64 { return -2 * r * (t + 1) },
			func(r, s, t float64) float64 { return -2 * r * (r + s - 1) },
		},
		{ // 13
			func(r, s, t float64) float64 { return -2 * s * (t + 1) },
			func(r, s, t float64) float64 { return -2*s*(t+1) - 2*(t+1)*(r+s-1) },
			func(r, s, t float64) float64 { return -2 * s * (r + s - 1) },
		},
		{ // 14
			func(r, s, t float64) float64 { return 2 * s * (t + 1) },
			func(r, s, t float64) float64 { return 2 * r * (t + 1) },
			func(r, s, t float64) float64 { return 2 * r * s },
		},
	}
	ddn := derivTable{
		{
			func(r, s, t float64) float64 { return 2 - 2*t },
			func(r, s, t float64) float64 { return 2 - 2*t },
			func(r, s, t float64) float64 { return 1 - r - s },
		},
		{
			func(r, s, t float64) float64 { return 2 - 2*t },
			zero,
			func(r, s, t float64) float64 { return r },
		},
		{
			zero,
			func(r, s, t float64) float64 { return 2 - 2*t },
			func(r, s, t float64) float64 { return s },
		},
		{
			func(r, s, t float64) float64 { return 2*t + 2 },
			func(r, s, t float64) float64 { return 2*t + 2 },
			func(r, s, t float64) float64 { return 1 - r - s },
		},
		{
			func(r, s, t float64) float64 { return 2*t + 2 },
			zero,
			func(r, s, t float64) float64 { return r },
		},
		{
			zero,
			func(r, s, t float64) float64 { return 2*t + 2 },
			func(r, s, t float64) float64 { return s },
		},
		{func(r, s, t float64) float64 { return 4*t - 4 }, zero, zero},
		{zero, func(r, s, t float64) float64 { return 4*t - 4 }, zero},
		{zero, zero, func(r, s, t float64) float64 { return 2*r + 2*s - 2 }},
		{zero, zero, zero},
		{zero, zero, func(r, s, t float64) float64 { return -2 * r }},
		{zero, zero, func(r, s, t float64) float64 { return -2 * s }},
		{func(r, s, t float64) float64 { return -4*t - 4 }, zero, zero},
		{zero, func(r, s, t float64) float64 { return -4*t - 4 }, zero},
		{zero, zero, zero},
	}
	nodes := append(append([][3]float64{}, prismVertices...),
		[3]float64{0.5, 0, -1}, // 6: 0-1
		[3]float64{0, 0.5, -1}, // 7: 0-2
		[3]float64{0, 0, 0},    // 8: 0-3
		[3]float64{0.5, 0.5, -1},
		[3]float64{1, 0, 0},
		[3]float64{0, 1, 0},
		[3]float64{0.5, 0, 1},
		[3]float64{0, 0.5, 1},
		[3]float64{0.5, 0.5, 1},
	)
	return &shapeSet{
		elementType: PRISM15,
		order:       2,
		origin:      prismOrigin,
		nodes:       nodes,
		faces: [][]int{
			{0, 8, 3, 12, 4, 10, 1, 6},
			{0, 7, 2, 11, 5, 13, 3, 8},
			{1, 10, 4, 14, 5, 11, 2, 9},
			{3, 13, 5, 14, 4, 12, 3, 3},
			{0, 6, 1, 9, 2, 7, 0, 0},
		},
		segments: prismSegments,
		n:        n,
		derivs:   []derivTable{dn, ddn},
	}
}
