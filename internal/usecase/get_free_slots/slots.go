package get_free_slots

import (
	"sort"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/types"
)

// generateSlots генерирует свободные слоты по окнам доступности.
// Внутри каждого окна слоты идут с фиксированным шагом slotDuration от начала
// окна; последний слот обрезается до конца окна и может быть короче шага.
// Слот попадает в результат, только если он не пересекается ни с одной
// активной резервацией.
func generateSlots(
	windows []*domain.AvailabilityWindow,
	slotDuration int,
	reservations []*domain.Reservation,
) ([]Slot, error) {
	slots := make([]Slot, 0)

	for _, w := range windows {
		current := w.StartTime

		for current.IsBefore(w.EndTime) {
			end, err := current.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}

			// Последний слот обрезаем до конца окна. Шаг, переваливший
			// через полночь, AddMinutes заворачивает на начало суток —
			// такой слот тоже упирается в конец окна.
			if !current.IsBefore(end) || w.EndTime.IsBefore(end) {
				end = w.EndTime
			}

			if !overlapsAny(current, end, reservations) {
				slots = append(slots, Slot{StartTime: current, EndTime: end})
			}

			next, err := current.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
			if !current.IsBefore(next) {
				break
			}
			current = next
		}
	}

	// Окна могут идти в любом порядке, слоты отдаем хронологически
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// overlapsAny проверяет пересечение слота [start, end) с активными резервациями
func overlapsAny(start, end types.TimeString, reservations []*domain.Reservation) bool {
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		if domain.Overlaps(start, end, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
}
