package models

type Parcel struct {
	ID         int64  `gorm:"primary_key;autoIncrement"`
	AccountNum string `gorm:"type:varchar(255);uniqueIndex"`
	GeoID      string `gorm:"type:varchar(255);index"`
	County     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(255)"`

	SitusAddress   string `gorm:"type:varchar(255)"`
	OwnerName      string `gorm:"type:varchar(255)"`
	OwnerAddress   string `gorm:"type:varchar(255)"`
	LegalDescr     string `gorm:"type:varchar(1024)"`
	SchoolDistrict string `gorm:"type:varchar(255)"`

	LandValue        float64
	ImprovementValue float64
	TotalValue       float64
	AssessedValue    float64

	LandAcres float64
	YearBuilt int64

	// WKB hex on postgres, raw GeoJSON on sqlite
	Geom string `gorm:"type:text"`
}

type LandSegment struct {
	ID          int64  `gorm:"primary_key;autoIncrement"`
	AccountNum  string `gorm:"type:varchar(255);index"`
	Code        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:varchar(255)"`
	Acres       float64
	Value       float64
}

type Improvement struct {
	ID          int64  `gorm:"primary_key;autoIncrement"`
	AccountNum  string `gorm:"type:varchar(255);index"`
	Type        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:varchar(255)"`
	YearBuilt   int64
	Value       float64
}

// ParcelDetail is the record shape the details panel and the exporters
// consume. NotFound is a representable state so the panel can distinguish
// "selected but no data" from "nothing selected".
type ParcelDetail struct {
	AccountNum     string  `json:"account_num"`
	GeoID          string  `json:"geo_id"`
	County         string  `json:"county"`
	City           string  `json:"city"`
	SitusAddress   string  `json:"situs_address"`
	OwnerName      string  `json:"owner_name"`
	OwnerAddress   string  `json:"owner_address"`
	LegalDescr     string  `json:"legal_descr"`
	SchoolDistrict string  `json:"school_district"`
	LandValue      float64 `json:"land_value"`
	ImprovementVal float64 `json:"improvement_value"`
	TotalValue     float64 `json:"total_value"`
	AssessedValue  float64 `json:"assessed_value"`
	LandAcres      float64 `json:"land_acres"`
	YearBuilt      int64   `json:"year_built"`

	LandSegmentsList []LandSegment `json:"land_segments_list"`
	ImprovementsList []Improvement `json:"improvements_list"`

	NotFound bool `json:"not_found,omitempty"`
}

// ToDetail assembles the panel record for a parcel with its child rows.
func (p *Parcel) ToDetail(land []LandSegment, improvements []Improvement) *ParcelDetail {
	return &ParcelDetail{
		AccountNum:       p.AccountNum,
		GeoID:            p.GeoID,
		County:           p.County,
		City:             p.City,
		SitusAddress:     p.SitusAddress,
		OwnerName:        p.OwnerName,
		OwnerAddress:     p.OwnerAddress,
		LegalDescr:       p.LegalDescr,
		SchoolDistrict:   p.SchoolDistrict,
		LandValue:        p.LandValue,
		ImprovementVal:   p.ImprovementValue,
		TotalValue:       p.TotalValue,
		AssessedValue:    p.AssessedValue,
		LandAcres:        p.LandAcres,
		YearBuilt:        p.YearBuilt,
		LandSegmentsList: land,
		ImprovementsList: improvements,
	}
}

// NotFoundDetail builds the synthetic record shown when an identifier
// resolves to no stored parcel.
func NotFoundDetail(id string) *ParcelDetail {
	return &ParcelDetail{AccountNum: id, NotFound: true}
}
