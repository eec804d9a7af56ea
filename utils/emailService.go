package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"kudos/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		// Email is optional; skip silently when SMTP is not configured.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Kudos <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.content h2 { color: #1E293B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.code-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2563EB; margin: 20px 0; font-size: 20px; letter-spacing: 2px; text-align: center; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>KUDOS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from your recognition platform.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Kudos"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created. You can now recognize your colleagues,
		collect points and redeem them in the rewards catalog.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Recognition received
func SendRecognitionEmail(email, recipientName, senderName string, points int) {
	subject := fmt.Sprintf("%s recognized you!", senderName)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p><strong>%s</strong> just sent you a recognition worth <strong>%d points</strong>.</p>
		<p>Log in to see the message and your updated balance.</p>
	`, recipientName, senderName, points)

	go SendEmail([]string{email}, subject, getEmailTemplate("You've Been Recognized", body))
}

// 3. Redemption confirmation with pickup code
func SendRedemptionEmail(email, name, rewardTitle, redemptionCode string) {
	subject := "Redemption Confirmed: " + rewardTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You redeemed <strong>%s</strong>. Present this code to collect your reward:</p>
		<div class="code-box"><strong>%s</strong></div>
		<p>Your redemption is pending approval. You will keep the code either way.</p>
	`, name, rewardTitle, redemptionCode)

	go SendEmail([]string{email}, subject, getEmailTemplate("Redemption Confirmed", body))
}
