package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_orders_created_total",
		Help: "Orders created successfully.",
	})
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_orders_cancelled_total",
		Help: "Orders cancelled.",
	})
	StockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_stock_rejections_total",
		Help: "Order attempts rejected for insufficient stock.",
	})
)
