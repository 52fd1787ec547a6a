package information

import "errors"

var ErrServiceNotFound = errors.New("service not found")

// Banner is read-only promotional content
type Banner struct {
	BannerName  string `db:"banner_name" json:"banner_name"`
	BannerImage string `db:"banner_image" json:"banner_image"`
	Description string `db:"description" json:"description"`
}

// Service is a payable product with a fixed tariff in smallest currency
// units.
type Service struct {
	ServiceCode   string `db:"service_code" json:"service_code"`
	ServiceName   string `db:"service_name" json:"service_name"`
	ServiceIcon   string `db:"service_icon" json:"service_icon"`
	ServiceTariff int64  `db:"service_tariff" json:"service_tariff"`
}
