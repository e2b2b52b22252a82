package models

// SavedViewport keeps the last computed bounding box per identifier so a
// deep-link load can restore the viewport without re-querying geometry.
type SavedViewport struct {
	Identifier string `gorm:"type:varchar(255);primary_key"`
	MinX       float64
	MinY       float64
	MaxX       float64
	MaxY       float64
}

// SelectedState mirrors the page URL's ?id= parameter: written on every
// successful selection, cleared on clear-selection, read once at load.
type SelectedState struct {
	ID         int64  `gorm:"primary_key"`
	Identifier string `gorm:"type:varchar(255)"`
}

type OverlayLayer struct {
	ID        int64  `gorm:"primary_key;autoIncrement"`
	Name      string `gorm:"type:varchar(255);uniqueIndex"`
	TableName string `gorm:"type:varchar(255)"`
	Enabled   bool
	Opacity   float64
}

// ViewerFlag gates one-time UI states, e.g. the "entered" interstitial.
type ViewerFlag struct {
	Name  string `gorm:"type:varchar(255);primary_key"`
	Value bool
}
