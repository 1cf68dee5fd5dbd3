package model

// Outcome is the terminal result of one download invocation: either the path
// of the fully written file or the final error after all attempts. It is
// never mutated after construction.
type Outcome struct {
	Path string
	Err  error
}

// Success returns an outcome carrying the written file path.
func Success(path string) Outcome {
	return Outcome{Path: path}
}

// Failure returns an outcome carrying the final error.
func Failure(err error) Outcome {
	return Outcome{Err: err}
}

// Succeeded reports whether the download produced a file.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}
