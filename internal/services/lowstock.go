package services

import (
	"inventory_manager/internal/logger"
	"inventory_manager/internal/repository"
	"inventory_manager/pkg/notify"

	"go.uber.org/zap"
)

// notifyLowStock fires the operator webhook when an item's availability sits
// at or below the threshold. Delivery failures are logged, never propagated.
func notifyLowStock(items repository.ItemRepository, notifier *notify.Client, threshold int, name string) {
	if notifier == nil || !notifier.Enabled() {
		return
	}
	item, err := items.GetByName(name)
	if err != nil {
		return
	}
	available := item.AvailableStock()
	if available > threshold {
		return
	}
	alert := &notify.LowStockAlert{
		Item:           item.Name,
		AvailableStock: available,
		Threshold:      threshold,
	}
	if err := notifier.SendLowStockAlert(alert); err != nil {
		logger.Log.Warn("failed to send low stock alert",
			zap.String("item", item.Name), zap.Error(err))
	}
}
