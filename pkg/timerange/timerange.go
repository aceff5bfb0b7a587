// Package timerange parses 12-hour time range templates ("09:00 AM - 08:00 PM")
// and carves them into discrete bookable slots of fixed duration.
package timerange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat возвращается, когда строка диапазона не соответствует
	// формату "HH:MM AM - HH:MM PM"
	ErrInvalidFormat = errors.New("timerange: invalid time range format")
)

// rangePattern принимает часы 1-12, минуты 00-59, опциональный пробел перед
// меридианом, дефис с произвольными пробелами вокруг. Регистр AM/PM не важен.
var rangePattern = regexp.MustCompile(
	`^\s*(0?[1-9]|1[0-2]):([0-5][0-9])\s?([APap][Mm])\s*-\s*(0?[1-9]|1[0-2]):([0-5][0-9])\s?([APap][Mm])\s*$`,
)

// Minutes время суток в минутах от полуночи
type Minutes int

// Format12 форматирует время в 12-часовом виде с ведущим нулём ("09:30 AM").
// Формат должен байт-в-байт совпадать с тем, что хранится в time_slot.
func (m Minutes) Format12() string {
	hour := int(m) / 60
	minute := int(m) % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%02d:%02d %s", hour12, minute, meridiem)
}

// Range распарсенный шаблон временного диапазона
type Range struct {
	Start Minutes
	End   Minutes
}

// ParseRange парсит строку вида "09:00 AM - 08:00 PM" в Range.
// Не проверяет, что Start < End - обратный или нулевой диапазон
// даёт пустой список слотов в Slots, это не ошибка парсинга.
func ParseRange(s string) (Range, error) {
	match := rangePattern.FindStringSubmatch(s)
	if match == nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	start := toMinutes(match[1], match[2], match[3])
	end := toMinutes(match[4], match[5], match[6])

	return Range{Start: start, End: end}, nil
}

// toMinutes переводит 12-часовые компоненты в минуты от полуночи.
// Компоненты уже провалидированы регулярным выражением.
func toMinutes(hourStr, minuteStr, meridiem string) Minutes {
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minuteStr)

	hour = hour % 12
	if strings.EqualFold(meridiem, "PM") {
		hour += 12
	}

	return Minutes(hour*60 + minute)
}

// Slot дискретный интервал фиксированной длительности, вырезанный из Range
type Slot struct {
	Start Minutes
	End   Minutes
}

// Label каноническая строка слота ("09:00 AM – 09:30 AM", разделитель - en-dash).
// Используется как ключ уникальности и как отображаемое значение.
func (s Slot) Label() string {
	return s.Start.Format12() + " – " + s.End.Format12()
}

// Slots нарезает диапазон на слоты длительностью durationMinutes.
// Последний неполный слот не эмитится: слот попадает в результат, только
// если целиком помещается до End. Start >= End даёт пустой список.
func (r Range) Slots(durationMinutes int) []Slot {
	slots := make([]Slot, 0)
	if durationMinutes <= 0 {
		return slots
	}

	d := Minutes(durationMinutes)
	for current := r.Start; current+d <= r.End; current += d {
		slots = append(slots, Slot{Start: current, End: current + d})
	}

	return slots
}
