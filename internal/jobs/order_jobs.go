package jobs

import (
	"context"
	"time"

	"github.com/adarsh-sng/JustRentIt/internal/logger"
)

// SendReturnReminders emails renters of active orders past their expected
// return time. It never touches order status: active/returned/cancelled is
// a closed set and only the renter's own actions move an order out of
// active.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		overdue, err := jr.orderRepo.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}
		logger.Info("Found overdue orders", "count", len(overdue))

		sent := 0
		for _, order := range overdue {
			renter, err := jr.userRepo.GetByID(ctx, order.RenterID)
			if err != nil {
				logger.Warn("Failed to load renter for reminder", "order_id", order.OrderID, "renter_id", order.RenterID, "error", err)
				continue
			}
			if err := jr.emailSvc.SendReturnReminder(ctx, renter.Email, renter.Name, &order); err != nil {
				logger.Warn("Failed to send return reminder", "order_id", order.OrderID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Return reminders sent", "sent", sent, "overdue", len(overdue))
	})
}
