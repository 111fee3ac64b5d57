package render

// Renderer writes a use case result to the terminal
type Renderer[T any] interface {
	Render(result T) error
}
