package entities

// ComponentRequest asks for one component to be finalized into a session
type ComponentRequest struct {
	Line        int
	Kind        ComponentKind
	PoleWidthMm int
	// PoleWidthSet marks PoleWidthMm as given explicitly, even when it is zero
	PoleWidthSet bool
	Selections   AttributeSelection
}

// HasPoleWidth reports whether the request carries its own pole width
func (r ComponentRequest) HasPoleWidth() bool {
	return r.PoleWidthSet || r.PoleWidthMm != 0
}
