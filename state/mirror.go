// Package state persists the bookmarkable viewer state: the selected
// identifier (the page URL's ?id= mirror), per-identifier viewport boxes,
// overlay toggles and one-time flags.
package state

import (
	"errors"
	"log"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/duraiaravindh/parcel-landscore/selection"
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

const selectedStateRow = int64(1)

// GormMirror implements selection.StateMirror and selection.OverlayProvider
// on the viewer-state database. Write failures are logged, not surfaced:
// losing a bookmark must not break the selection flow.
type GormMirror struct {
	db *gorm.DB
}

func NewGormMirror(db *gorm.DB) *GormMirror {
	return &GormMirror{db: db}
}

func (m *GormMirror) SetSelectedID(id string) {
	row := models.SelectedState{ID: selectedStateRow, Identifier: id}
	if err := m.db.Save(&row).Error; err != nil {
		log.Printf("selected id mirror write failed: %v", err)
	}
}

func (m *GormMirror) ClearSelectedID() {
	if err := m.db.Delete(&models.SelectedState{}, selectedStateRow).Error; err != nil {
		log.Printf("selected id mirror clear failed: %v", err)
	}
}

func (m *GormMirror) SelectedID() (string, bool) {
	var row models.SelectedState
	err := m.db.First(&row, selectedStateRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || row.Identifier == "" {
		return "", false
	}
	if err != nil {
		log.Printf("selected id mirror read failed: %v", err)
		return "", false
	}
	return row.Identifier, true
}

func (m *GormMirror) SaveViewport(id string, b orb.Bound) {
	row := models.SavedViewport{
		Identifier: id,
		MinX:       b.Min[0],
		MinY:       b.Min[1],
		MaxX:       b.Max[0],
		MaxY:       b.Max[1],
	}
	if err := m.db.Save(&row).Error; err != nil {
		log.Printf("viewport save failed for %s: %v", id, err)
	}
}

func (m *GormMirror) Viewport(id string) (orb.Bound, bool) {
	var row models.SavedViewport
	err := m.db.First(&row, "identifier = ?", id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("viewport read failed for %s: %v", id, err)
		}
		return orb.Bound{}, false
	}
	return orb.Bound{
		Min: orb.Point{row.MinX, row.MinY},
		Max: orb.Point{row.MaxX, row.MaxY},
	}, true
}

// EnabledOverlays lists overlays toggled on, for click-time attribute
// collection. Only enabled overlays are ever consulted.
func (m *GormMirror) EnabledOverlays() []selection.OverlayRef {
	var rows []models.OverlayLayer
	if err := m.db.Where("enabled = ?", true).Find(&rows).Error; err != nil {
		log.Printf("overlay list read failed: %v", err)
		return nil
	}
	refs := make([]selection.OverlayRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, selection.OverlayRef{Name: row.Name, Layer: row.TableName})
	}
	return refs
}

// Flag reads a one-time viewer flag, e.g. the "entered" interstitial gate.
func (m *GormMirror) Flag(name string) bool {
	var row models.ViewerFlag
	if err := m.db.First(&row, "name = ?", name).Error; err != nil {
		return false
	}
	return row.Value
}

func (m *GormMirror) SetFlag(name string, value bool) {
	row := models.ViewerFlag{Name: name, Value: value}
	if err := m.db.Save(&row).Error; err != nil {
		log.Printf("flag write failed for %s: %v", name, err)
	}
}
