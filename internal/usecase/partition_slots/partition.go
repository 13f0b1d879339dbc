package partition_slots

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Buckets слоты дня, разбитые на утро (до 12:00) и после полудня
type Buckets struct {
	Morning   []domain.TimeSlot
	Afternoon []domain.TimeSlot
}

// Partition разбивает слоты по часу начала. Порядок внутри каждой группы сохраняется как есть.
func Partition(slots []domain.TimeSlot) Buckets {
	var b Buckets
	for _, slot := range slots {
		if slot.IsMorning() {
			b.Morning = append(b.Morning, slot)
		} else {
			b.Afternoon = append(b.Afternoon, slot)
		}
	}
	return b
}

// HasAvailable возвращает true, если хотя бы один слот доступен
func (b Buckets) HasAvailable() bool {
	return countAvailable(b.Morning)+countAvailable(b.Afternoon) > 0
}

// Empty возвращает true, если на этот день нет ни одного доступного слота.
// Не путать с ошибкой загрузки.
func (b Buckets) Empty() bool {
	return !b.HasAvailable()
}

// Len общее количество слотов
func (b Buckets) Len() int {
	return len(b.Morning) + len(b.Afternoon)
}

// Find ищет слот по времени начала
func (b Buckets) Find(t types.TimeOfDay) (domain.TimeSlot, bool) {
	group := b.Afternoon
	if t.IsMorning() {
		group = b.Morning
	}
	for _, slot := range group {
		if slot.Time == t {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}

func countAvailable(slots []domain.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
