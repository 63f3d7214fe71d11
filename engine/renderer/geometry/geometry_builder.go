package geometry

// ShapesBuilderOption is a functional option applied to Shapes during construction via NewShapes.
type ShapesBuilderOption func(*Shapes)

// WithMaxParticles sets the particle capacity of the shared particle mesh.
//
// Parameters:
//   - n: the maximum number of particles one draw renders
//
// Returns:
//   - ShapesBuilderOption: a function that applies the capacity option to the shapes
func WithMaxParticles(n int) ShapesBuilderOption {
	return func(s *Shapes) {
		s.maxParticles = n
	}
}
