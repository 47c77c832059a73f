// Package notifier holds ProducerNotifier implementations.
package notifier

import (
	"context"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/ordercycle"

	"github.com/sirupsen/logrus"
)

// LogProducerNotifier records producer notifications in the log instead of
// mailing them. It stands in for the mailer in development and in
// deployments where mail is delivered by another service tailing the log.
type LogProducerNotifier struct {
	logger logrus.FieldLogger
}

func NewLogProducerNotifier(logger logrus.FieldLogger) *LogProducerNotifier {
	return &LogProducerNotifier{logger: logger.WithField("component", "producer_notifier")}
}

func (n *LogProducerNotifier) NotifyProducer(ctx context.Context, oc *ordercycle.OrderCycle, producer *enterprise.Enterprise) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := logrus.Fields{
		"order_cycle_id": oc.ID().String(),
		"order_cycle":    oc.Name(),
		"producer_id":    producer.ID().String(),
		"producer":       producer.Name(),
	}
	if oc.OrdersOpenAt() != nil {
		fields["orders_open_at"] = oc.OrdersOpenAt().Format("2006-01-02 15:04")
	}
	if oc.OrdersCloseAt() != nil {
		fields["orders_close_at"] = oc.OrdersCloseAt().Format("2006-01-02 15:04")
	}

	n.logger.WithFields(fields).Info("Order cycle opened for producer")
	return nil
}
