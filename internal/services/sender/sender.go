// Package services отправляет письма ученикам по доменным событиям платформы.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// SenderService превращает события из очереди в письма.
type SenderService struct {
	transport smtp.TransportInterface
	domain    string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService. Адрес получателя
// строится как <username>@domain.
func NewSenderService(transport smtp.TransportInterface, domain string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		domain:    domain,
		log:       log,
	}
}

// HandleEvent разбирает событие и отправляет соответствующее письмо.
// Неизвестные типы событий пропускаются без ошибки.
func (s *SenderService) HandleEvent(body []byte) error {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if event.Username == "" {
		s.log.Warn("event without username skipped", slog.String("type", event.Type))
		return nil
	}

	var subject, text string
	switch event.Type {
	case models.EventUserRegistered:
		subject = "Bienvenue sur la plateforme"
		text = fmt.Sprintf("Bonjour %s,\r\n\r\nVotre compte a été créé. Les premières leçons de chaque matière sont gratuites.",
			event.Username)
	case models.EventSubscriptionGranted:
		subject = "Abonnement activé"
		text = fmt.Sprintf("Bonjour %s,\r\n\r\nVotre abonnement à %s est maintenant actif (%s). Toutes les leçons de la matière sont disponibles.",
			event.Username, subjectName(event.SubjectID), event.Status)
	case models.EventSubscriptionRevoked:
		subject = "Abonnement terminé"
		text = fmt.Sprintf("Bonjour %s,\r\n\r\nVotre abonnement à %s a été retiré. Les leçons premium de cette matière ne sont plus accessibles.",
			event.Username, subjectName(event.SubjectID))
	default:
		s.log.Warn("unknown event type", slog.String("type", event.Type))
		return nil
	}

	return s.sendEmail([]string{s.recipient(event.Username)}, subject, text)
}

// recipient возвращает адрес ученика: имя-адрес как есть, голое имя с доменом.
func (s *SenderService) recipient(username string) string {
	if strings.Contains(username, "@") {
		return username
	}
	return username + "@" + s.domain
}

func subjectName(id string) string {
	for _, level := range models.Levels {
		if subject, err := catalog.SubjectForLevel(level, id); err == nil {
			return subject.Name
		}
	}
	return id
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.Sender(),
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

	if err := client.Mail(s.transport.Sender()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.Sender()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
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

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
