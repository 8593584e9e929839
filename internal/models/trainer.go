package models

import "time"

// TrainerAccess описывает окно доступа к персональному тренеру.
// Окно всегда подчинено ровно одному абонементу и имеет смысл
// только при TrainerAssigned = true.
type TrainerAccess struct {
	MembershipID    int        // Абонемент, к которому привязан доступ
	TrainerUID      *string    // UID назначенного тренера
	TrainerAssigned bool       // Назначен ли тренер
	PeriodStart     time.Time  // Начало окна доступа
	PeriodEnd       *time.Time // Окончание окна доступа
	GracePeriodEnd  *time.Time // Окончание льготного периода доступа
	IsIncluded      bool       // Часть окна включена в тариф
	IsAddon         bool       // Часть окна куплена как дополнение
}

// DummyTrainerAssign используется для приёма данных из JSON-запроса
// на назначение тренера.
type DummyTrainerAssign struct {
	MembershipID int    `json:"membership_id" validate:"required,gt=0"` // Абонемент
	TrainerUID   string `json:"trainer_uid" validate:"required,uuid"`   // UID тренера
}

// Message представляет сообщение участника назначенному тренеру.
type Message struct {
	ID           int       // Идентификатор сообщения
	MembershipID int       // Абонемент отправителя
	SenderUID    string    // UID отправителя
	TrainerUID   string    // UID тренера-получателя
	Body         string    // Текст сообщения
	SentAt       time.Time // Время отправки
}

// DummyMessage используется для приёма данных из JSON-запроса на отправку
// сообщения тренеру.
type DummyMessage struct {
	Body string `json:"body" validate:"required,max=2000"` // Текст сообщения
}
