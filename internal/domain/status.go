package domain

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var ValidStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus accepts only the five enumerated order states.
func ParseStatus(s string) (Status, error) {
	for _, v := range ValidStatuses {
		if Status(s) == v {
			return v, nil
		}
	}
	return "", &InvalidStatusError{Status: s}
}
