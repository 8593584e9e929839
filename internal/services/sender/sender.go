// Package sender содержит сервис рассылки почтовых уведомлений об изменениях
// окон абонементов: вход в льготный период и окончательное истечение.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Transport описывает контракт почтового транспорта.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service рассылает почтовые уведомления владельцам абонементов.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport Transport, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendMembershipGraceNotice уведомляет владельца о входе абонемента в льготный
// период и о сроке, до которого доступно продление.
func (s *Service) SendMembershipGraceNotice(body []byte) error {
	var info models.MembershipInfo
	if err := json.Unmarshal(body, &info); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{info.Email}
	subject := "Уведомление об окончании срока действия абонемента"
	deadline := ""
	if info.GracePeriodEnd != nil {
		deadline = fmt.Sprintf("\n\nПродлить абонемент можно до %s.", info.GracePeriodEnd.Format("02.01.2006"))
	}
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nСрок действия вашего абонемента %q закончился %s, начался льготный период.%s",
		info.Username, info.PlanName, info.PeriodEnd.Format("02.01.2006"), deadline)

	return s.sendEmail(to, subject, bodyText)
}

// SendMembershipExpiredNotice уведомляет владельца об истечении абонемента
// вместе с льготным периодом.
func (s *Service) SendMembershipExpiredNotice(body []byte) error {
	var info models.MembershipInfo
	if err := json.Unmarshal(body, &info); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{info.Email}
	subject := "Абонемент перестал действовать"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаш абонемент %q и льготный период для его продления истекли.\n\nДля возобновления занятий оформите новый абонемент.",
		info.Username, info.PlanName)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
