package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s is confirmed.\n\nOrder ID: %s\nTotal: %.2f\nExpected return: %s\n\nBest regards,\nThe JustRentIt Team",
		name, order.ProductName, order.OrderID,
		float64(order.TotalPriceCents)/100,
		order.ExpectedReturnAt.Format("Mon, 02 Jan 2006 15:04"),
	)
	return s.send(email, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name string, order *domain.Order) error {
	subject := fmt.Sprintf("Return reminder for %s", order.ProductName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s (order %s) was due back on %s. Please return it as soon as possible.\n\nBest regards,\nThe JustRentIt Team",
		name, order.ProductName, order.OrderID,
		order.ExpectedReturnAt.Format("Mon, 02 Jan 2006 15:04"),
	)
	return s.send(email, subject, body)
}

func (s *emailService) SendCancellationNotice(ctx context.Context, email, name string, order *domain.Order) error {
	subject := fmt.Sprintf("Order %s cancelled", order.OrderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour order %s for %s has been cancelled.\n\nBest regards,\nThe JustRentIt Team",
		name, order.OrderID, order.ProductName,
	)
	return s.send(email, subject, body)
}
