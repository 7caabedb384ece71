package codegen

// CapabilityError reports a lowering request the configured target cannot
// satisfy, such as vector lowering without the vector extension.
type CapabilityError struct {
	Message string
}

func (e *CapabilityError) Error() string { return e.Message }

// WellFormednessError reports an IR shape the lowering rules do not
// recognize. Lowering fails hard rather than skipping, since a silent
// skip would produce wrong code.
type WellFormednessError struct {
	Message string
}

func (e *WellFormednessError) Error() string { return e.Message }
