package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя: admin, trainer или user
	CreatedAt    time.Time // Дата регистрации
}
