package entity

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }

// DeliveryStatusOf maps a send outcome to the stored status.
func DeliveryStatusOf(ok bool) DeliveryStatus {
	if ok {
		return DeliveryStatusSent
	}
	return DeliveryStatusFailed
}
