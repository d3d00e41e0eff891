package models

import "time"

// Difficulty — сложность видеоурока.
type Difficulty string

// Subject — предмет, доступный на уровне. Таблица предметов статична.
type Subject struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Icon              string  `json:"icon"`
	Color             string  `json:"color"`
	SubscriptionPrice float64 `json:"subscription_price"`
}

// Video — запись видео, которой управляет администратор.
type Video struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SubjectID   string     `json:"subject_id"`
	Level       Level      `json:"level"`
	SourceURL   string     `json:"source_url"`
	Duration    string     `json:"duration"`
	Difficulty  Difficulty `json:"difficulty"`
	IsPremium   bool       `json:"is_premium"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
}

// VideoPatch — частичное обновление видео. nil-поля не меняются.
type VideoPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	SubjectID   *string     `json:"subject_id,omitempty"`
	Level       *Level      `json:"level,omitempty"`
	SourceURL   *string     `json:"source_url,omitempty"`
	Duration    *string     `json:"duration,omitempty"`
	Difficulty  *Difficulty `json:"difficulty,omitempty"`
	IsPremium   *bool       `json:"is_premium,omitempty"`
}

// Apply применяет патч к видео и возвращает результат.
func (p VideoPatch) Apply(v Video) Video {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.SubjectID != nil {
		v.SubjectID = *p.SubjectID
	}
	if p.Level != nil {
		v.Level = *p.Level
	}
	if p.SourceURL != nil {
		v.SourceURL = *p.SourceURL
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.Difficulty != nil {
		v.Difficulty = *p.Difficulty
	}
	if p.IsPremium != nil {
		v.IsPremium = *p.IsPremium
	}
	return v
}

// Lesson — урок: проекция видео либо запись резервного каталога.
// SourceURL никогда не сериализуется в публичных ответах.
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	SubjectID   string     `json:"subject_id"`
	Duration    string     `json:"duration"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	IsPremium   bool       `json:"is_premium"`
	Content     string     `json:"content,omitempty"`
	SourceURL   string     `json:"-"`
}

// PublicLesson — публичная проекция урока.
type PublicLesson struct {
	Lesson
	HasVideo bool `json:"has_video"`
}

// Public возвращает урок без ссылки на источник.
func (l Lesson) Public() PublicLesson {
	return PublicLesson{Lesson: l, HasVideo: l.SourceURL != ""}
}
