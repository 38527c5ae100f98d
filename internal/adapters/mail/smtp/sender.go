package smtp

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp sender not configured")

// Config del sender SMTP. From puede diferir del Username.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) (*Sender, error) {
	if strings.TrimSpace(cfg.Host) == "" || strings.TrimSpace(cfg.From) == "" {
		return nil, ErrNotConfigured
	}
	port := cfg.Port
	if port <= 0 {
		port = 587
	}
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// NewFromEnv lee SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD y
// SMTP_FROM. Sin SMTP_HOST devuelve ErrNotConfigured.
func NewFromEnv() (*Sender, error) {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	from := strings.TrimSpace(os.Getenv("SMTP_FROM"))
	if from == "" {
		from = strings.TrimSpace(os.Getenv("SMTP_USERNAME"))
	}
	return New(Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	})
}

// Send manda un mail de texto plano. gomail no acepta context; el ctx queda
// en la firma por el port.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}
