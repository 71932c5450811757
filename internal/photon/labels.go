package photon

// LabelMap translates between ASPRS classification codes and the 0-based
// sequential labels a classifier is trained on. Several ASPRS codes may fold
// into one model label (noise and unlabeled both become 0), so the reverse
// table is kept explicitly rather than derived.
type LabelMap struct {
	toModel map[Class]int
	toASPRS map[int]Class
}

// NewLabelMap builds a LabelMap from explicit forward and reverse tables.
func NewLabelMap(toModel map[Class]int, toASPRS map[int]Class) *LabelMap {
	lm := &LabelMap{
		toModel: make(map[Class]int, len(toModel)),
		toASPRS: make(map[int]Class, len(toASPRS)),
	}
	for k, v := range toModel {
		lm.toModel[k] = v
	}
	for k, v := range toASPRS {
		lm.toASPRS[k] = v
	}
	return lm
}

// DefaultLabelMap returns the table used by the ATL24 classifiers.
func DefaultLabelMap() *LabelMap {
	return NewLabelMap(
		map[Class]int{
			0:           0, // unlabeled
			7:           0, // noise
			2:           1, // ground
			4:           2, // vegetation
			5:           3, // canopy
			SeaSurface:  4,
			WaterColumn: 5,
			Bathymetry:  6,
		},
		map[int]Class{
			0: Unclassified,
			1: 2,
			2: 4,
			3: 5,
			4: SeaSurface,
			5: WaterColumn,
			6: Bathymetry,
		},
	)
}

// ToModel returns the model label for an ASPRS class.
func (lm *LabelMap) ToModel(c Class) (int, bool) {
	v, ok := lm.toModel[c]
	return v, ok
}

// ToASPRS returns the ASPRS class for a model label.
func (lm *LabelMap) ToASPRS(label int) (Class, bool) {
	v, ok := lm.toASPRS[label]
	return v, ok
}
