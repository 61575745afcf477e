package gpu

import "fmt"

// ShaderError reports a shader module or pipeline that failed to build.
type ShaderError struct {
	Stage string
	Err   error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("shader %s: %v", e.Stage, e.Err)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}
