package auth

import (
	"fmt"
	"net/smtp"
	"strings"

	"networth/config"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional mail through the configured provider.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (me *SMTPMailer) SendMail(to []string, subject, message string) error {
	body := "From: " + me.cfg.Sender + "\n" +
		"To: " + strings.Join(to, ",") + "\n" +
		"Subject: " + subject + "\n\n" +
		message

	auth := smtp.PlainAuth("", me.cfg.User, me.cfg.Password, me.cfg.Host)
	smtpAddr := fmt.Sprintf("%s:%d", me.cfg.Host, me.cfg.Port)

	return smtp.SendMail(smtpAddr, auth, me.cfg.User, to, []byte(body))
}

// SendHtmlMail delivers an html body through gomail, used for mails that
// carry markup (invitations).
func (me *SMTPMailer) SendHtmlMail(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", me.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := gomail.NewDialer(me.cfg.Host, me.cfg.Port, me.cfg.User, me.cfg.Password)
	return d.DialAndSend(msg)
}

func (me *SMTPMailer) SendOTPMail(to, code string) error {
	return me.SendMail([]string{to}, "NetWorth", fmt.Sprintf("Your Verification Pin Code is: %s", code))
}

func (me *SMTPMailer) SendInvitationMail(to, link string) error {
	return me.SendHtmlMail(to, "NetWorth",
		fmt.Sprintf(`You have an Invitation from the NetWorthHub <a href="%s">%s</a>`, link, link))
}
