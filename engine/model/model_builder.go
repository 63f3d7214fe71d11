package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that overrides the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithBounds is an option builder that overrides the file-space bounding box of the Model.
//
// Parameters:
//   - lo: the minimum corner
//   - hi: the maximum corner
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds option to a model
func WithBounds(lo, hi [3]float32) ModelBuilderOption {
	return func(m *model) {
		m.boundsMin, m.boundsMax = lo, hi
	}
}
