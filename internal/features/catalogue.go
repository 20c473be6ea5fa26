package features

// Name identifies one of the eight input features. The string value is the
// JSON key the prediction service expects.
type Name string

const (
	TPI        Name = "TPI"
	TRI        Name = "TRI"
	TWI        Name = "TWI"
	VDepth     Name = "VDepth"
	VIS        Name = "VIS"
	NDVIMax    Name = "NDVI_max"
	NDVIMedian Name = "NDVI_median"
	NDVISD     Name = "NDVI_sd"
)

// Spec describes how a feature is labelled and randomised.
type Spec struct {
	Name      Name
	Label     string
	Glyph     string
	Min       float64
	Max       float64
	Precision int // decimal places kept by Random
}

// catalogue is in display (and JSON) order.
var catalogue = []Spec{
	{Name: TPI, Label: "Topographic Position Index", Glyph: "⛰", Min: -10, Max: 10, Precision: 2},
	{Name: TRI, Label: "Terrain Ruggedness Index", Glyph: "⛰", Min: -5, Max: 10, Precision: 2},
	{Name: TWI, Label: "Topographic Wetness Index", Glyph: "≈", Min: 0, Max: 30, Precision: 2},
	{Name: VDepth, Label: "Vertical Depth", Glyph: "↕", Min: 10, Max: 60, Precision: 2},
	{Name: VIS, Label: "Visible Light Reflectance", Glyph: "◉", Min: 0, Max: 1, Precision: 3},
	{Name: NDVIMax, Label: "Max NDVI", Glyph: "❦", Min: 0, Max: 1, Precision: 3},
	{Name: NDVIMedian, Label: "Median NDVI", Glyph: "▥", Min: 0, Max: 1, Precision: 3},
	{Name: NDVISD, Label: "NDVI Standard Deviation", Glyph: "▥", Min: 0, Max: 0.5, Precision: 3},
}

// Catalogue returns the feature specs in display order.
func Catalogue() []Spec {
	out := make([]Spec, len(catalogue))
	copy(out, catalogue)
	return out
}

// Names returns the feature names in display order.
func Names() []Name {
	names := make([]Name, len(catalogue))
	for i, s := range catalogue {
		names[i] = s.Name
	}
	return names
}

// Lookup returns the catalogue entry for name.
func Lookup(name Name) (Spec, bool) {
	for _, s := range catalogue {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
