package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"
	"gamoiwere/pkg/sms"

	"gorm.io/gorm"
)

// milestoneTemplate is the Georgian notification text keyed by delivery
// status.
type milestoneTemplate struct {
	Title   string
	Message string
}

var milestoneTemplates = map[string]milestoneTemplate{
	domain.DeliveryStatusOrdered: {
		Title:   "შეკვეთა გაფორმებულია",
		Message: "თქვენი შეკვეთა %s გაფორმდა მომწოდებელთან. მადლობა, რომ სარგებლობთ GAMOIWERE.GE-თი!",
	},
	domain.DeliveryStatusReceivedChina: {
		Title:   "შეკვეთა მივიდა საწყობში",
		Message: "თქვენი შეკვეთა %s მივიდა ჩინეთის საწყობში და მზადდება გამოსაგზავნად.",
	},
	domain.DeliveryStatusSentTbilisi: {
		Title:   "შეკვეთა გზაშია",
		Message: "თქვენი შეკვეთა %s გამოიგზავნა თბილისის მიმართულებით.",
	},
	domain.DeliveryStatusDeliveredTbilisi: {
		Title:   "შეკვეთა ჩამოვიდა თბილისში",
		Message: "თქვენი შეკვეთა %s ჩამოვიდა თბილისში და მზადაა გასატანად.",
	},
}

type UpsertTrackingInput struct {
	DeliveryStatus      string  `json:"delivery_status"`
	TrackingNumber      string  `json:"tracking_number"`
	ProductWeight       float64 `json:"product_weight"`
	TransportationPrice float64 `json:"transportation_price"` // major units
	Notes               string  `json:"notes"`
}

type TrackingService struct {
	db       *gorm.DB
	tracking *repository.TrackingRepository
	orders   *repository.OrderRepository
	users    *repository.UserRepository
	smsLogs  *repository.SMSLogRepository
	notifier *NotificationService
	sender   sms.Sender
}

func NewTrackingService(
	db *gorm.DB,
	tracking *repository.TrackingRepository,
	orders *repository.OrderRepository,
	users *repository.UserRepository,
	smsLogs *repository.SMSLogRepository,
	notifier *NotificationService,
	sender sms.Sender,
) *TrackingService {
	return &TrackingService{
		db:       db,
		tracking: tracking,
		orders:   orders,
		users:    users,
		smsLogs:  smsLogs,
		notifier: notifier,
		sender:   sender,
	}
}

// Upsert creates or updates the tracking row for an order. Changing the
// transportation price moves the owning user's pending fee accumulator by
// the delta (the full price on first insert) and appends a ledger entry,
// all in one transaction. Milestone notification and SMS are fired after
// commit and never fail the upsert.
func (s *TrackingService) Upsert(orderID uint, in UpsertTrackingInput) (*models.DeliveryTracking, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	newPrice := domain.ToMinorUnits(in.TransportationPrice)

	var row *models.DeliveryTracking
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.DeliveryTracking
		findErr := tx.Where("order_id = ?", orderID).First(&existing).Error

		var delta int64
		var reason string
		switch {
		case findErr == nil:
			delta = newPrice - existing.TransportationPrice
			reason = "transportation price updated"
			applyTrackingInput(&existing, in, newPrice)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			row = &existing
		case findErr == gorm.ErrRecordNotFound:
			delta = newPrice
			reason = "tracking created"
			created := models.DeliveryTracking{OrderID: orderID}
			applyTrackingInput(&created, in, newPrice)
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			row = &created
		default:
			return findErr
		}

		if delta != 0 {
			if err := s.users.AddPendingTransportationFees(tx, order.UserID, delta); err != nil {
				return err
			}
			return s.tracking.AppendFeeEntry(tx, &models.TransportFeeEntry{
				UserID:  order.UserID,
				OrderID: orderID,
				Delta:   delta,
				Reason:  reason,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.DeliveryStatus != "" {
		s.sendMilestone(order, in.DeliveryStatus)
	}
	return row, nil
}

// applyTrackingInput copies the input onto the row and stamps the matching
// milestone timestamp if the status is new.
func applyTrackingInput(t *models.DeliveryTracking, in UpsertTrackingInput, priceTetri int64) {
	if in.DeliveryStatus != "" {
		t.DeliveryStatus = in.DeliveryStatus
	}
	if in.TrackingNumber != "" {
		t.TrackingNumber = in.TrackingNumber
	}
	if in.ProductWeight > 0 {
		t.ProductWeight = in.ProductWeight
	}
	t.TransportationPrice = priceTetri
	if in.Notes != "" {
		t.Notes = in.Notes
	}
	now := time.Now()
	switch in.DeliveryStatus {
	case domain.DeliveryStatusOrdered:
		if t.OrderedAt == nil {
			t.OrderedAt = &now
		}
	case domain.DeliveryStatusReceivedChina:
		if t.ReceivedChinaAt == nil {
			t.ReceivedChinaAt = &now
		}
	case domain.DeliveryStatusSentTbilisi:
		if t.SentTbilisiAt == nil {
			t.SentTbilisiAt = &now
		}
	case domain.DeliveryStatusDeliveredTbilisi:
		if t.DeliveredTbilisiAt == nil {
			t.DeliveredTbilisiAt = &now
		}
	}
}

// sendMilestone persists the notification, pushes it live, and attempts
// SMS delivery. Every SMS attempt lands in sms_logs regardless of outcome.
func (s *TrackingService) sendMilestone(order *models.Order, status string) {
	tpl, ok := milestoneTemplates[status]
	if !ok {
		log.Printf("[tracking] no template for delivery status %s", status)
		return
	}
	message := fmt.Sprintf(tpl.Message, order.OrderNumber)

	oid := order.ID
	if err := s.notifier.Notify(order.UserID, &oid, "DELIVERY_UPDATE", tpl.Title, message); err != nil {
		log.Printf("[tracking] notification failed for order %d: %v", order.ID, err)
	}

	user, err := s.users.GetByID(order.UserID)
	if err != nil || user.Phone == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	resp, sendErr := s.sender.Send(ctx, user.Phone, message)
	logRow := &models.SMSLog{
		UserID:   user.ID,
		OrderID:  &oid,
		Phone:    user.Phone,
		Message:  message,
		Success:  sendErr == nil,
		Response: resp,
	}
	if sendErr != nil {
		logRow.Response = sendErr.Error()
		log.Printf("[tracking] sms failed for order %d: %v", order.ID, sendErr)
	}
	if err := s.smsLogs.Create(logRow); err != nil {
		log.Printf("[tracking] sms log write failed: %v", err)
	}
}

func (s *TrackingService) GetForOrder(orderID uint) (*models.DeliveryTracking, error) {
	return s.tracking.GetByOrderID(orderID)
}

func (s *TrackingService) GetForUser(userID uint) ([]models.DeliveryTracking, error) {
	return s.tracking.ListByUserID(userID)
}
