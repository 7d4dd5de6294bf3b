package dto

import (
	"hotel/internal/domains/report/model"
	"hotel/shared/constant"
	"time"
)

type HotelRevenue struct {
	HotelID      int64  `json:"hotel_id"      yaml:"HotelID"`
	HotelName    string `json:"hotel_name"    yaml:"HotelName"`
	TotalRevenue string `json:"total_revenue" yaml:"TotalRevenue"`
}

func (r *HotelRevenue) FromModel(model model.HotelRevenue) {
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.TotalRevenue = model.TotalRevenue.StringFixed(constant.MoneyPlaces)
}

// RevenueReport is the exported document.
type RevenueReport struct {
	GeneratedAt string         `json:"generated_at" yaml:"GeneratedAt"`
	Hotels      []HotelRevenue `json:"hotels"       yaml:"Hotels"`
}

func (r *RevenueReport) FromModels(models []model.HotelRevenue, generatedAt time.Time) {
	r.GeneratedAt = generatedAt.Format(constant.DateTimeFormat)

	r.Hotels = make([]HotelRevenue, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
