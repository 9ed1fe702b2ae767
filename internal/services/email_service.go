package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"hacktrack/internal/metrics"
	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

// MailSender is the transport; *gomail.Dialer satisfies it.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailRequest struct {
	To      string
	Subject string
	HTML    string
	// UserID and NotificationType are both required for a log entry to be written.
	UserID           string
	NotificationType string
	Metadata         map[string]any
}

type EmailData struct {
	ID string `json:"id"`
}

type EmailResult struct {
	Success bool       `json:"success"`
	Data    *EmailData `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type EmailService interface {
	Send(ctx context.Context, req EmailRequest) EmailResult
}

type emailService struct {
	sender MailSender
	from   string
	logs   repositories.NotificationLogRepository
	logger *zap.Logger
}

func NewSMTPSender(smtpHost string, smtpPort int, smtpUser, smtpPassword string) *gomail.Dialer {
	return gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
}

func NewEmailService(sender MailSender, fromEmail string, logs repositories.NotificationLogRepository, logger *zap.Logger) EmailService {
	return &emailService{
		sender: sender,
		from:   fromEmail,
		logs:   logs,
		logger: logger,
	}
}

func (s *emailService) Send(ctx context.Context, req EmailRequest) EmailResult {
	messageID := uuid.NewString()

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", req.To)
	m.SetHeader("Subject", req.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@hacktrack>", messageID))
	m.SetBody("text/html", req.HTML)

	var result EmailResult
	if err := s.sender.DialAndSend(m); err != nil {
		s.logger.Error("[email][send][err]",
			zap.String("to", req.To),
			zap.String("type", req.NotificationType),
			zap.Error(err),
		)
		result = EmailResult{Success: false, Error: fmt.Sprintf("failed to send email: %v", err)}
	} else {
		s.logger.Info("[email][send][ok]",
			zap.String("to", req.To),
			zap.String("type", req.NotificationType),
			zap.String("message_id", messageID),
		)
		result = EmailResult{Success: true, Data: &EmailData{ID: messageID}}
	}

	status := models.NotificationSent
	if !result.Success {
		status = models.NotificationFailed
	}
	metrics.EmailsTotal.WithLabelValues(typeLabel(req.NotificationType), string(status)).Inc()

	if req.UserID != "" && req.NotificationType != "" {
		s.writeLog(ctx, req, status, result)
	}
	return result
}

func (s *emailService) writeLog(ctx context.Context, req EmailRequest, status models.NotificationStatus, result EmailResult) {
	meta := map[string]any{"to": req.To, "subject": req.Subject}
	for k, v := range req.Metadata {
		meta[k] = v
	}
	if result.Data != nil {
		meta["message_id"] = result.Data.ID
	}
	if result.Error != "" {
		meta["error"] = result.Error
	}

	entry := &models.NotificationLog{
		UserID:           req.UserID,
		NotificationType: req.NotificationType,
		Channel:          models.ChannelEmail,
		Status:           status,
		Metadata:         meta,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger.Error("[email][log][err]",
			zap.String("user_id", req.UserID),
			zap.String("type", req.NotificationType),
			zap.Error(err),
		)
	}
}

func typeLabel(t string) string {
	if t == "" {
		return "adhoc"
	}
	return t
}
