package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// AvailableSlot бронируемый слот с набором мастеров, способных его взять
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	MasterIDs       []int64
}

// HasMaster возвращает true, если мастер может взять этот слот
func (s *AvailableSlot) HasMaster(masterID int64) bool {
	for _, id := range s.MasterIDs {
		if id == masterID {
			return true
		}
	}
	return false
}
