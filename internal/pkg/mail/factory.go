package mail

import (
	"fmt"
	"strings"
)

// Config selects and configures a driver.
type Config struct {
	// Driver is "sendgrid", "smtp" or "log". Empty picks sendgrid when an API
	// key is present, otherwise smtp when a host is present, otherwise log.
	Driver   string
	From     string
	FromName string
	SendGrid SendGridConfig
	SMTP     SMTPConfig
}

// New builds the configured driver.
func New(cfg Config) (Mail, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		switch {
		case cfg.SendGrid.APIKey != "":
			driver = "sendgrid"
		case cfg.SMTP.Host != "":
			driver = "smtp"
		default:
			driver = "log"
		}
	}

	switch driver {
	case "sendgrid":
		sg := cfg.SendGrid
		sg.From = firstNonEmpty(sg.From, cfg.From)
		sg.FromName = firstNonEmpty(sg.FromName, cfg.FromName)
		return NewSendGrid(sg)
	case "smtp":
		sc := cfg.SMTP
		sc.From = firstNonEmpty(sc.From, cfg.From)
		return NewSMTP(sc)
	case "log":
		return NewLog(cfg.From), nil
	default:
		return nil, fmt.Errorf("mail: unknown driver %q", cfg.Driver)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
