package domain

import "time"

// Service услуга с фиксированной длительностью
// Длительность задает размер бронируемого интервала
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	DiscountPercent *float64 // nil = без скидки
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FinalPrice возвращает цену с учетом скидки
func (s *Service) FinalPrice() float64 {
	if s.DiscountPercent == nil || *s.DiscountPercent <= 0 {
		return s.Price
	}
	d := *s.DiscountPercent
	if d > 100 {
		d = 100
	}
	return s.Price * (100 - d) / 100
}
