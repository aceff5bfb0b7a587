package get_day_schedule

import "time"

// Request модель запроса расписания дня
type Request struct {
	OrgID int64     // ID организации
	Date  time.Time // Дата, на которую нужны слоты (без времени)
}

// Response модель ответа с расписанием дня.
// Либо Holiday = true и Groups пустой, либо Holiday = false и Groups
// содержит по одной группе на каждый шаблон организации.
type Response struct {
	OrgID   int64
	Date    time.Time
	Holiday bool
	Groups  []TemplateGroup
}

// TemplateGroup слоты одного шаблона, в порядке объявления шаблонов
type TemplateGroup struct {
	Label    string // исходный диапазон шаблона ("09:00 AM - 01:00 PM")
	Disabled bool   // true для неактивных шаблонов: показываются, но не бронируются
	Slots    []SlotView
}

// SlotView один дискретный слот с признаком доступности
type SlotView struct {
	Label     string // каноническая строка слота ("09:00 AM – 09:30 AM")
	Available bool
}
