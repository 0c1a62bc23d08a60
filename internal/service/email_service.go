package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	cfg "github.com/marafield/brandops/configs"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type EmailService interface {
	SendCampaign(ctx context.Context, recipients []string, subject, htmlBody string) (int, error)
}

// emailService sends brand campaign mail through the Gmail API using the
// operator's offline refresh token.
type emailService struct {
	cfg cfg.Config
}

func NewEmailService(c cfg.Config) EmailService {
	return &emailService{cfg: c}
}

func (s *emailService) SendCampaign(ctx context.Context, recipients []string, subject, htmlBody string) (int, error) {
	if len(recipients) == 0 {
		err := errors.New("no recipients provided")
		slog.Info(err.Error())
		return 0, err
	}
	if subject == "" {
		err := errors.New("subject cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}
	if s.cfg.GmailSender == "" || s.cfg.GmailRefreshToken == "" {
		err := errors.New("gmail credentials are not configured")
		slog.Info(err.Error())
		return 0, err
	}

	conf := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}

	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: s.cfg.GmailRefreshToken})
	client := oauth2.NewClient(ctx, tokenSource)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("error creating Gmail service: %w", err)
	}

	sent := 0
	for _, recipient := range recipients {
		message := buildMimeMessage(s.cfg.GmailSender, recipient, subject, htmlBody)
		if _, err := service.Users.Messages.Send("me", message).Do(); err != nil {
			slog.Info(fmt.Sprintf("failed to send to %s: %v", recipient, err))
			continue
		}
		sent++
	}

	if sent == 0 {
		return 0, errors.New("no emails could be sent")
	}

	return sent, nil
}

func buildMimeMessage(from, to, subject, htmlBody string) *gmail.Message {
	var raw strings.Builder
	raw.WriteString("From: " + from + "\r\n")
	raw.WriteString("To: " + to + "\r\n")
	raw.WriteString("Subject: " + subject + "\r\n")
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(htmlBody)

	return &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw.String())),
	}
}
