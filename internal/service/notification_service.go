package service

import (
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/ws"
)

// NotificationService persists a notification row and then pushes it over
// the live socket when one is open. The row is written first so a missed
// push only delays, never loses, the notification.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

func (s *NotificationService) Notify(userID uint, orderID *uint, notifType, title, message string) error {
	n := &models.Notification{
		UserID:  userID,
		OrderID: orderID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(userID, map[string]interface{}{
			"type": "notification",
			"data": n,
		})
	}
	return nil
}

func (s *NotificationService) NotifyPaymentConfirmed(userID, orderID uint, orderNumber string) error {
	oid := orderID
	return s.Notify(userID, &oid, "PAYMENT_CONFIRMED", "გადახდა დადასტურებულია",
		"თქვენი გადახდა შეკვეთაზე "+orderNumber+" წარმატებით დასრულდა.")
}

func (s *NotificationService) NotifyOrderStatus(userID, orderID uint, orderNumber, status string) error {
	oid := orderID
	return s.Notify(userID, &oid, "ORDER_STATUS", "შეკვეთის სტატუსი განახლდა",
		"შეკვეთის "+orderNumber+" სტატუსია: "+status)
}

func (s *NotificationService) NotifyBalanceAdjusted(userID uint, deltaTetri int64) error {
	title := "ბალანსი შეივსო"
	if deltaTetri < 0 {
		title = "ბალანსი შემცირდა"
	}
	return s.Notify(userID, nil, "BALANCE_ADJUSTED", title, "თქვენი ანგარიშის ბალანსი განახლდა.")
}
