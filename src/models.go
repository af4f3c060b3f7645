package main

// Vertex data of the demo models. Squares are drawn as 4-vertex
// triangle strips, cubes as 24 vertices (4 per face) indexed into 12
// triangles.

var whiteSquare = []float32{
	-1.0, 1.0,
	1.0, 1.0,
	-1.0, -1.0,
	1.0, -1.0,
}

var colorSquare = []float32{
	1.0, 1.0,
	-1.0, 1.0,
	1.0, -1.0,
	-1.0, -1.0,
}

var colorSquareColors = []float32{
	1.0, 1.0, 1.0, 1.0, // white
	1.0, 0.0, 0.0, 1.0, // red
	0.0, 1.0, 0.0, 1.0, // green
	0.0, 0.0, 1.0, 1.0, // blue
}

var cubePositions = []float32{
	// front
	-1.0, -1.0, 1.0,
	1.0, -1.0, 1.0,
	1.0, 1.0, 1.0,
	-1.0, 1.0, 1.0,
	// back
	-1.0, -1.0, -1.0,
	-1.0, 1.0, -1.0,
	1.0, 1.0, -1.0,
	1.0, -1.0, -1.0,
	// top
	-1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0,
	1.0, 1.0, 1.0,
	1.0, 1.0, -1.0,
	// bottom
	-1.0, -1.0, -1.0,
	1.0, -1.0, -1.0,
	1.0, -1.0, 1.0,
	-1.0, -1.0, 1.0,
	// right
	1.0, -1.0, -1.0,
	1.0, 1.0, -1.0,
	1.0, 1.0, 1.0,
	1.0, -1.0, 1.0,
	// left
	-1.0, -1.0, -1.0,
	-1.0, -1.0, 1.0,
	-1.0, 1.0, 1.0,
	-1.0, 1.0, -1.0,
}

var cubeIndices = []uint16{
	0, 1, 2, 0, 2, 3, // front
	4, 5, 6, 4, 6, 7, // back
	8, 9, 10, 8, 10, 11, // top
	12, 13, 14, 12, 14, 15, // bottom
	16, 17, 18, 16, 18, 19, // right
	20, 21, 22, 20, 22, 23, // left
}

// cubeFaceColors lists one RGBA colour per face, in cubePositions order.
var cubeFaceColors = [6][4]float32{
	{1.0, 1.0, 1.0, 1.0}, // white
	{1.0, 0.0, 0.0, 1.0}, // red
	{0.0, 1.0, 0.0, 1.0}, // green
	{0.0, 0.0, 1.0, 1.0}, // blue
	{1.0, 1.0, 0.0, 1.0}, // yellow
	{1.0, 0.0, 1.0, 1.0}, // purple
}

// cubeColors expands the face colours to one colour per vertex.
func cubeColors() []float32 {
	colors := make([]float32, 0, 6*4*4)
	for _, c := range cubeFaceColors {
		for i := 0; i < 4; i++ {
			colors = append(colors, c[:]...)
		}
	}
	return colors
}

var cubeTexCoords = []float32{
	// front
	0.0, 1.0,
	1.0, 1.0,
	1.0, 0.0,
	0.0, 0.0,
	// back
	1.0, 1.0,
	1.0, 0.0,
	0.0, 0.0,
	0.0, 1.0,
	// top
	0.0, 0.0,
	1.0, 0.0,
	1.0, 1.0,
	0.0, 1.0,
	// bottom
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	1.0, 1.0,
	// right
	1.0, 1.0,
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	// left
	1.0, 0.0,
	1.0, 1.0,
	0.0, 1.0,
	0.0, 0.0,
}

// bannerTexCoords mirrors the front and back faces of cubeTexCoords.
var bannerTexCoords = []float32{
	// front
	1.0, 1.0,
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	// back
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	1.0, 1.0,
	// top
	0.0, 0.0,
	1.0, 0.0,
	1.0, 1.0,
	0.0, 1.0,
	// bottom
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	1.0, 1.0,
	// right
	1.0, 1.0,
	0.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
	// left
	1.0, 0.0,
	1.0, 1.0,
	0.0, 1.0,
	0.0, 0.0,
}
