package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWorkspaceInvite(toEmail, workspaceName, inviterName, token string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendWorkspaceInvite(toEmail, workspaceName, inviterName, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Convite para o workspace %s", workspaceName))

	inviteLink := fmt.Sprintf("%s/invite?token=%s", s.clientURL, token)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Você foi convidado!</h2>
			<p><strong>%s</strong> convidou você para participar do workspace <strong>%s</strong> no Amby.</p>
			<p><a href="%s" style="display: inline-block; padding: 10px 20px; background: #4F46E5; color: #fff; text-decoration: none; border-radius: 6px;">Aceitar convite</a></p>
			<p>Este convite expira em 7 dias.</p>
			<p>Se você não esperava este convite, pode ignorar este email.</p>
		</div>
	`, inviterName, workspaceName, inviteLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send invite email to %s: %w", toEmail, err)
	}
	return nil
}
