package orders

import "fmt"

const (
	TopicPedidoCreated   = "pedido.created"
	TopicPedidoCancelled = "pedido.cancelled"
)

// Partition key = pedido id, so all events for one order keep their order.
func PartitionKey(orderID int64) []byte {
	return []byte(fmt.Sprintf("pedido-%d", orderID))
}
