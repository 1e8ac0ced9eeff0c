package entity

// Question представляет вопрос викторины
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Text       string `gorm:"column:question;not null" json:"question"`
	Answer     string `gorm:"not null" json:"answer"`
	Category   string `gorm:"size:64;not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}
