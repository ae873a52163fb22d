package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"
	"gamoiwere/pkg/mailer"
	"gamoiwere/pkg/sms"
)

const orderConfirmationEmail = `გამარჯობა {{name}},

თქვენი შეკვეთა {{order_number}} მიღებულია.

ჯამური თანხა: {{total}} ₾
მიწოდების სავარაუდო თარიღი: {{estimated_delivery}}

მადლობა, რომ სარგებლობთ GAMOIWERE.GE-თი!`

// Dispatcher drains order events asynchronously. A failed email or SMS is
// logged and dropped; the order itself is already durably persisted.
type Dispatcher struct {
	mail    mailer.Sender
	sender  sms.Sender
	orders  *repository.OrderRepository
	smsLogs *repository.SMSLogRepository
}

func NewDispatcher(mail mailer.Sender, sender sms.Sender, orders *repository.OrderRepository, smsLogs *repository.SMSLogRepository) *Dispatcher {
	return &Dispatcher{mail: mail, sender: sender, orders: orders, smsLogs: smsLogs}
}

// Dispatch processes events on a separate goroutine and returns
// immediately.
func (d *Dispatcher) Dispatch(events []OrderEvent) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[dispatch] panic: %v", r)
			}
		}()
		for _, ev := range events {
			d.handle(ev)
		}
	}()
}

func (d *Dispatcher) handle(ev OrderEvent) {
	switch ev.Type {
	case EventOrderCreated:
		d.sendOrderConfirmation(ev.Order, ev.User)
	default:
		log.Printf("[dispatch] unknown event %s", ev.Type)
	}
}

func (d *Dispatcher) sendOrderConfirmation(order *models.Order, user *models.User) {
	if d.mail != nil && user.Email != "" {
		body := mailer.Render(orderConfirmationEmail, map[string]string{
			"name":               user.Username,
			"order_number":       order.OrderNumber,
			"total":              fmt.Sprintf("%.2f", domain.ToMajorUnits(order.TotalAmount)),
			"estimated_delivery": estimateString(order),
		})
		if err := d.mail.Send(user.Email, "შეკვეთა მიღებულია: "+order.OrderNumber, body); err != nil {
			log.Printf("[MAIL] order confirmation failed for order %d: %v", order.ID, err)
		}
	}

	if d.sender == nil || user.Phone == "" {
		return
	}
	msg := fmt.Sprintf("თქვენი შეკვეთა %s მიღებულია. სტატუსი: %s. მადლობა!", order.OrderNumber, order.Status)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	resp, err := d.sender.Send(ctx, user.Phone, msg)
	oid := order.ID
	logRow := &models.SMSLog{
		UserID:   user.ID,
		OrderID:  &oid,
		Phone:    user.Phone,
		Message:  msg,
		Success:  err == nil,
		Response: resp,
	}
	if err != nil {
		logRow.Response = err.Error()
		log.Printf("[SMS] order confirmation failed for order %d: %v", order.ID, err)
	} else if markErr := d.orders.MarkSMSNotificationSent(order.ID); markErr != nil {
		log.Printf("[SMS] could not latch sms flag for order %d: %v", order.ID, markErr)
	}
	if logErr := d.smsLogs.Create(logRow); logErr != nil {
		log.Printf("[SMS] log write failed: %v", logErr)
	}
}

func estimateString(order *models.Order) string {
	if order.EstimatedDeliveryDate == nil {
		return ""
	}
	return order.EstimatedDeliveryDate.Format("02.01.2006")
}
