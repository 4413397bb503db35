package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type ReceiptItem struct {
	Name     string
	Quantity int
	Price    float64
}

type ReceiptData struct {
	OrderNumber   string
	MerchantName  string
	TableNumber   string
	Items         []ReceiptItem
	Subtotal      float64
	TokenDiscount float64
	Total         float64
	TokensEarned  int64
}

type IEmailService interface {
	SendOrderReceipt(toEmail string, receipt *ReceiptData) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendOrderReceipt(toEmail string, receipt *ReceiptData) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your receipt for order %s", receipt.OrderNumber))

	var rows strings.Builder
	for _, item := range receipt.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px; text-align: center;">x%d</td><td style="padding: 4px 8px; text-align: right;">$%.2f</td></tr>`,
			item.Name, item.Quantity, item.Price,
		))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for dining at %s!</h2>
			<p>Order <strong>%s</strong> (table %s)</p>
			<table style="border-collapse: collapse; width: 100%%; max-width: 480px;">
				%s
			</table>
			<hr/>
			<p>Subtotal: $%.2f</p>
			<p>Token discount: -$%.2f</p>
			<h3>Total: $%.2f</h3>
			<p style="color: #4CAF50;">You earned %d reward tokens with this order.</p>
		</div>
	`, receipt.MerchantName, receipt.OrderNumber, receipt.TableNumber,
		rows.String(), receipt.Subtotal, receipt.TokenDiscount, receipt.Total, receipt.TokensEarned)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt for %s sent to %s\n", receipt.OrderNumber, toEmail)
	return nil
}
