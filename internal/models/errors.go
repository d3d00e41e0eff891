package models

import "errors"

var (
	// ErrDuplicateUser — имя пользователя уже занято.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidLevel — уровень не входит в список допустимых.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrInvalidCredentials — неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — подпись, срок или назначение токена не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden — у субъекта нет прав на операцию.
	ErrForbidden = errors.New("forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrVideoNotFound        = errors.New("video not found")
	// ErrSubscriptionRequired — урок платный, а подписки на предмет нет.
	ErrSubscriptionRequired = errors.New("subscription required")
	// ErrVideoUnavailable — у урока нет ссылки на видео.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrConflict — запись изменилась между чтением и записью.
	ErrConflict = errors.New("concurrent modification")
)
