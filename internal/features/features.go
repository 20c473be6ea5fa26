// Package features holds the eight-field soil/terrain record submitted for
// prediction. A field is either a parsed finite number or unset; unset is
// never conflated with zero.
package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"socpredict/internal/apperrors"
)

// InputFeatures is the record posted to the prediction service.
// A nil field is unset.
type InputFeatures struct {
	TPI        *float64
	TRI        *float64
	TWI        *float64
	VDepth     *float64
	VIS        *float64
	NDVIMax    *float64
	NDVIMedian *float64
	NDVISD     *float64
}

func (f *InputFeatures) slot(name Name) (**float64, bool) {
	switch name {
	case TPI:
		return &f.TPI, true
	case TRI:
		return &f.TRI, true
	case TWI:
		return &f.TWI, true
	case VDepth:
		return &f.VDepth, true
	case VIS:
		return &f.VIS, true
	case NDVIMax:
		return &f.NDVIMax, true
	case NDVIMedian:
		return &f.NDVIMedian, true
	case NDVISD:
		return &f.NDVISD, true
	}
	return nil, false
}

// Set applies a raw text edit to one field. Empty text unsets the field.
// Text that is not a finite number also unsets the field and returns a
// validation error naming it. Other fields are never touched.
func (f *InputFeatures) Set(name Name, raw string) error {
	p, ok := f.slot(name)
	if !ok {
		return fmt.Errorf("unknown feature %q", name)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*p = nil
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*p = nil
		return apperrors.NewValidation(fmt.Sprintf("%s must be a number", name), string(name))
	}
	*p = &v
	return nil
}

// SetValue stores v in one field.
func (f *InputFeatures) SetValue(name Name, v float64) error {
	p, ok := f.slot(name)
	if !ok {
		return fmt.Errorf("unknown feature %q", name)
	}
	*p = &v
	return nil
}

// Get returns the field's value and whether it is set.
func (f InputFeatures) Get(name Name) (float64, bool) {
	p, ok := f.slot(name)
	if !ok || *p == nil {
		return 0, false
	}
	return **p, true
}

// IsSet reports whether the named field holds a number.
func (f InputFeatures) IsSet(name Name) bool {
	_, ok := f.Get(name)
	return ok
}

// Missing returns the unset field names in display order.
func (f InputFeatures) Missing() []Name {
	var missing []Name
	for _, name := range Names() {
		if !f.IsSet(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Complete reports whether all eight fields are set.
func (f InputFeatures) Complete() bool {
	return len(f.Missing()) == 0
}

// Validate returns a validation error listing the unset fields.
func (f InputFeatures) Validate() error {
	missing := f.Missing()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, n := range missing {
		names[i] = string(n)
	}
	return apperrors.NewValidation("please fill in all fields before submitting", names...)
}

// Text renders a field for an input box: empty when unset, otherwise the
// shortest decimal form.
func (f InputFeatures) Text(name Name) string {
	v, ok := f.Get(name)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type wireFeatures struct {
	TPI        float64 `json:"TPI"`
	TRI        float64 `json:"TRI"`
	TWI        float64 `json:"TWI"`
	VDepth     float64 `json:"VDepth"`
	VIS        float64 `json:"VIS"`
	NDVIMax    float64 `json:"NDVI_max"`
	NDVIMedian float64 `json:"NDVI_median"`
	NDVISD     float64 `json:"NDVI_sd"`
}

// MarshalJSON encodes the record with exactly the eight service keys.
// An incomplete record cannot be encoded.
func (f InputFeatures) MarshalJSON() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(wireFeatures{
		TPI:        *f.TPI,
		TRI:        *f.TRI,
		TWI:        *f.TWI,
		VDepth:     *f.VDepth,
		VIS:        *f.VIS,
		NDVIMax:    *f.NDVIMax,
		NDVIMedian: *f.NDVIMedian,
		NDVISD:     *f.NDVISD,
	})
}

// UnmarshalJSON decodes a record; absent keys stay unset.
func (f *InputFeatures) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = InputFeatures{}
	for _, name := range Names() {
		if v := raw[string(name)]; v != nil {
			_ = f.SetValue(name, *v)
		}
	}
	return nil
}
