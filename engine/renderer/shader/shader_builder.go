package shader

// RegistryBuilderOption is a functional option applied to a Registry during construction via NewRegistry.
type RegistryBuilderOption func(*Registry)

// WithPreProcessor replaces the registry's pre-processor.
//
// Parameters:
//   - pp: the PreProcessor to use for every registered source
//
// Returns:
//   - RegistryBuilderOption: a function that applies the pre-processor option to a registry
func WithPreProcessor(pp PreProcessor) RegistryBuilderOption {
	return func(r *Registry) {
		r.pp = pp
	}
}

// WithChunk registers an additional include chunk on the registry's pre-processor.
//
// Parameters:
//   - name: the include name used in "#pragma oxy include <name>"
//   - source: the GLSL source of the chunk
//
// Returns:
//   - RegistryBuilderOption: a function that applies the chunk option to a registry
func WithChunk(name, source string) RegistryBuilderOption {
	return func(r *Registry) {
		r.pp.AddChunk(name, source)
	}
}
