package book_appointment

import "time"

// Request модель запроса на бронирование слота
type Request struct {
	UserID   int64     // ID пользователя
	OrgID    int64     // ID организации
	Name     string    // Отображаемое имя клиента
	Phone    string    // Телефон, ровно 10 цифр
	Date     time.Time // Дата записи (без времени)
	TimeSlot string    // Каноническая строка слота ("09:00 AM – 09:30 AM")
}

// Response модель ответа с созданной записью
type Response struct {
	ID       int64
	UserID   int64
	OrgID    int64
	Name     string
	Phone    string
	Date     time.Time
	TimeSlot string
	Status   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
