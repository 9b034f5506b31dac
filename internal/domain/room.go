package domain

// Room is a bookable resource: a lab or a meeting room
type Room struct {
	ID            int64
	Name          string
	EquipmentList string
}
