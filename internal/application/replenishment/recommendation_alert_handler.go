package replenishment

import (
	"context"
	"fmt"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"go.uber.org/zap"
)

// ReorderAlert is sent when a recommendation asks for an order right away
type ReorderAlert struct {
	RecommendationID string `json:"recommendation_id"`
	ProductID        string `json:"product_id"`
	SupplierID       string `json:"supplier_id"`
	Status           string `json:"status"`
	StockOutDate     string `json:"stock_out_date"`
	RestockDate      string `json:"restock_date"`
	RestockQuantity  string `json:"restock_quantity"`
}

// ReorderAlertNotifier delivers reorder alerts to purchasing
type ReorderAlertNotifier interface {
	SendReorderAlert(ctx context.Context, alert ReorderAlert) error
}

// RecommendationAlertHandler raises alerts for urgent and critical recommendations
type RecommendationAlertHandler struct {
	logger   *zap.Logger
	notifier ReorderAlertNotifier
}

// NewRecommendationAlertHandler creates a new RecommendationAlertHandler
func NewRecommendationAlertHandler(logger *zap.Logger) *RecommendationAlertHandler {
	return &RecommendationAlertHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *RecommendationAlertHandler) WithNotifier(notifier ReorderAlertNotifier) *RecommendationAlertHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *RecommendationAlertHandler) EventTypes() []string {
	return []string{replenishment.EventTypeRecommendationIssued}
}

// Handle processes a RecommendationIssuedEvent
func (h *RecommendationAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	issued, ok := event.(*replenishment.RecommendationIssuedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			replenishment.EventTypeRecommendationIssued, event.EventType())
	}

	if !issued.Status.NeedsAttention() {
		return nil
	}

	alert := ReorderAlert{
		RecommendationID: issued.RecommendationID.String(),
		ProductID:        issued.ProductID.String(),
		SupplierID:       issued.SupplierID.String(),
		Status:           string(issued.Status),
		StockOutDate:     issued.StockOutDate.Format("2006-01-02"),
		RestockDate:      issued.RestockDate.Format("2006-01-02"),
		RestockQuantity:  issued.RestockQuantity.String(),
	}

	h.logger.Warn("reorder required",
		zap.String("recommendation_id", alert.RecommendationID),
		zap.String("product_id", alert.ProductID),
		zap.String("status", alert.Status),
		zap.String("stock_out_date", alert.StockOutDate),
		zap.String("restock_quantity", alert.RestockQuantity),
	)

	if h.notifier != nil {
		if err := h.notifier.SendReorderAlert(ctx, alert); err != nil {
			// notification failure does not fail event handling
			h.logger.Error("failed to send reorder alert",
				zap.String("recommendation_id", alert.RecommendationID),
				zap.Error(err),
			)
		}
	}
	return nil
}

var _ shared.EventHandler = (*RecommendationAlertHandler)(nil)

// LoggingReorderAlertNotifier logs alerts instead of delivering them
type LoggingReorderAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingReorderAlertNotifier creates a new logging notifier
func NewLoggingReorderAlertNotifier(logger *zap.Logger) *LoggingReorderAlertNotifier {
	return &LoggingReorderAlertNotifier{logger: logger}
}

// SendReorderAlert logs the alert
func (n *LoggingReorderAlertNotifier) SendReorderAlert(_ context.Context, alert ReorderAlert) error {
	n.logger.Warn("REORDER ALERT",
		zap.String("status", alert.Status),
		zap.String("product_id", alert.ProductID),
		zap.String("supplier_id", alert.SupplierID),
		zap.String("restock_date", alert.RestockDate),
		zap.String("restock_quantity", alert.RestockQuantity),
	)
	return nil
}
