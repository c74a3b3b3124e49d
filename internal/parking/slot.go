package parking

// Slot is a single parking position. A nil Vehicle means the slot is free.
type Slot struct {
	Number  int
	Vehicle *Vehicle
}

func NewSlot(number int) *Slot {
	return &Slot{Number: number}
}

func (s *Slot) IsOccupied() bool {
	return s.Vehicle != nil
}

func (s *Slot) Park(vehicle *Vehicle) {
	s.Vehicle = vehicle
}

func (s *Slot) Leave() *Vehicle {
	vehicle := s.Vehicle
	s.Vehicle = nil
	return vehicle
}
