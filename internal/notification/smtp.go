package notification

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPSender отправка писем через SMTP с PLAIN-аутентификацией
type SMTPSender struct {
	addr string
	host string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		auth: auth,
		from: from,
		send: smtp.SendMail,
	}
}

// Send отправляет письмо, Message-ID генерируется на нашей стороне
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if msg.To == "" {
		return "", fmt.Errorf("smtp: empty recipient")
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)
	if err := s.send(s.addr, s.auth, s.from, []string{msg.To}, buildMIME(s.from, msg, messageID, time.Now())); err != nil {
		return "", fmt.Errorf("smtp: send to %s: %w", msg.To, err)
	}
	return messageID, nil
}

func buildMIME(from string, msg Message, messageID string, at time.Time) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + msg.To + "\r\n")
	sb.WriteString("Subject: " + msg.Subject + "\r\n")
	sb.WriteString("Message-ID: " + messageID + "\r\n")
	sb.WriteString("Date: " + at.Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	sb.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(sb.String())
}
