package valueobject

import "strings"

// Classification is the CRETIB hazard classification of a waste item or lot:
// Corrosive, Reactive, Explosive, Toxic, Flammable (I), Biological.
type Classification struct {
	Corrosive  bool `gorm:"not null;default:false" json:"corrosive"`
	Reactive   bool `gorm:"not null;default:false" json:"reactive"`
	Explosive  bool `gorm:"not null;default:false" json:"explosive"`
	Toxic      bool `gorm:"not null;default:false" json:"toxic"`
	Flammable  bool `gorm:"not null;default:false" json:"flammable"`
	Biological bool `gorm:"not null;default:false" json:"biological"`
}

// cretibOrder fixes the display order of the single-letter codes.
var cretibOrder = []struct {
	code   string
	active func(c Classification) bool
}{
	{"C", func(c Classification) bool { return c.Corrosive }},
	{"R", func(c Classification) bool { return c.Reactive }},
	{"E", func(c Classification) bool { return c.Explosive }},
	{"T", func(c Classification) bool { return c.Toxic }},
	{"I", func(c Classification) bool { return c.Flammable }},
	{"B", func(c Classification) bool { return c.Biological }},
}

// Codes returns the active single-letter codes in fixed C,R,E,T,I,B order.
func (c Classification) Codes() []string {
	codes := make([]string, 0, len(cretibOrder))
	for _, entry := range cretibOrder {
		if entry.active(c) {
			codes = append(codes, entry.code)
		}
	}
	return codes
}

// Display returns the active codes joined with ", " (e.g. "C, T").
func (c Classification) Display() string {
	return strings.Join(c.Codes(), ", ")
}

// IsZero reports whether no hazard flag is set.
func (c Classification) IsZero() bool {
	return c == Classification{}
}
