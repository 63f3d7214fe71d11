package model

// PolygonMapData is one polygon map of a layer before upload.
type PolygonMapData struct {
	// Name is the polygon map identifier.
	Name string

	// Texture is the GPU texture name of the polygon map's surface, or -1 for none.
	Texture int32

	// Indices are the triangle indices into the model's vertices.
	Indices []uint16
}

// LayerData is one named layer of a model before upload.
type LayerData struct {
	// Name is matched against a pass's layer filter.
	Name string

	// PolygonMaps are drawn in order.
	PolygonMaps []PolygonMapData
}

// MeshData is everything needed to build a Model.
type MeshData struct {
	// Name is the model identifier.
	Name string

	// Vertices are shared by every polygon map.
	Vertices []Vertex

	// Layers are iterated in order.
	Layers []LayerData

	// BoundingMin and BoundingMax are the file-space bounds. When both are zero they are
	// computed from the vertices.
	BoundingMin, BoundingMax [3]float32
}

// computeBounds returns the file-space bounds of vertices.
func computeBounds(vertices []Vertex) (lo, hi [3]float32) {
	if len(vertices) == 0 {
		return lo, hi
	}
	lo, hi = vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}
