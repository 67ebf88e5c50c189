package unit

// Description is a serializable summary of a unit for listings and APIs.
type Description struct {
	Name       string         `json:"name" yaml:"name"`
	Display    string         `json:"display" yaml:"display"`
	Factor     float64        `json:"factor" yaml:"factor"`
	Offset     float64        `json:"offset,omitempty" yaml:"offset,omitempty"`
	Dimensions map[string]int `json:"dimensions" yaml:"dimensions"`
	Comment    string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	URL        string         `json:"url,omitempty" yaml:"url,omitempty"`
	Prefixed   bool           `json:"prefixed" yaml:"prefixed"`
	Base       string         `json:"base,omitempty" yaml:"base,omitempty"`
}

// Describe summarizes u. Dimensions lists only non-zero exponents, keyed by
// base unit symbol.
func (u Unit) Describe() Description {
	dims := make(map[string]int)
	for i, p := range u.Dimensions {
		if p != 0 {
			dims[BaseSymbols[i]] = p
		}
	}
	d := Description{
		Name:       u.Name(),
		Display:    u.Display(),
		Factor:     u.Factor,
		Offset:     u.Offset,
		Dimensions: dims,
		Comment:    u.Meta.Comment,
		URL:        u.Meta.URL,
		Prefixed:   u.Prefixed,
	}
	if u.Base != nil {
		d.Base = u.Base.Name()
	}
	return d
}
