package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer envía los comprobantes en PDF a los clientes por SMTP plano.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendComprobante manda el correo con el PDF adjunto. pdfPath vacío envía el
// correo sin adjunto (el PDF pudo fallar; el aviso al cliente igual sale).
func (m *Mailer) SendComprobante(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("Acuamont <%s>", m.user)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntando PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
