package parking

// ParkingLot holds the slots of a single lot. The zero value is a lot that has
// not been created yet; Create allocates (or replaces) its slots.
type ParkingLot struct {
	slots []*Slot
}

func NewParkingLot(capacity int) *ParkingLot {
	pl := &ParkingLot{}
	pl.Create(capacity)
	return pl
}

// Create discards every slot and allocates capacity free slots numbered from 1.
func (pl *ParkingLot) Create(capacity int) {
	if capacity < 0 {
		capacity = 0
	}

	slots := make([]*Slot, capacity)
	for i := 0; i < capacity; i++ {
		slots[i] = NewSlot(i + 1)
	}

	pl.slots = slots
}

// Initialized reports whether the lot has at least one slot. A lot created
// with capacity 0 is indistinguishable from one never created.
func (pl *ParkingLot) Initialized() bool {
	return len(pl.slots) > 0
}

func (pl *ParkingLot) GetCapacity() int {
	return len(pl.slots)
}

func (pl *ParkingLot) Occupied() int {
	n := 0
	for _, slot := range pl.slots {
		if slot.IsOccupied() {
			n++
		}
	}
	return n
}

// Status returns the occupied slots in ascending position order.
func (pl *ParkingLot) Status() ([]*Slot, error) {
	if !pl.Initialized() {
		return nil, ErrNotCreated
	}

	var occupiedSlots []*Slot
	for _, slot := range pl.slots {
		if slot.IsOccupied() {
			occupiedSlots = append(occupiedSlots, slot)
		}
	}

	return occupiedSlots, nil
}

// Park puts the vehicle in the lowest-numbered free slot.
func (pl *ParkingLot) Park(vehicle *Vehicle) (*Slot, error) {
	if !pl.Initialized() {
		return nil, ErrNotCreated
	}

	for _, slot := range pl.slots {
		if !slot.IsOccupied() {
			slot.Park(vehicle)
			return slot, nil
		}
	}

	return nil, ErrLotFull
}

// Leave frees the slot at the 0-based index and returns it together with the
// vehicle that left.
func (pl *ParkingLot) Leave(index int) (*Slot, *Vehicle, error) {
	if !pl.Initialized() {
		return nil, nil, ErrNotCreated
	}

	if index < 0 || index >= len(pl.slots) {
		return nil, nil, &SpotError{Spot: index + 1, Err: ErrSpotOutOfRange}
	}

	slot := pl.slots[index]
	if !slot.IsOccupied() {
		return slot, nil, &SpotError{Spot: slot.Number, Err: ErrSpotAlreadyFree}
	}

	return slot, slot.Leave(), nil
}

// RegByColor returns the registration numbers of vehicles of the given color.
func (pl *ParkingLot) RegByColor(color string) ([]string, error) {
	if !pl.Initialized() {
		return nil, ErrNotCreated
	}

	var regs []string
	for _, slot := range pl.slotsWithColor(color) {
		regs = append(regs, slot.Vehicle.RegistrationNumber)
	}
	return regs, nil
}

// SpotByColor returns the positions of vehicles of the given color.
func (pl *ParkingLot) SpotByColor(color string) ([]int, error) {
	if !pl.Initialized() {
		return nil, ErrNotCreated
	}

	var spots []int
	for _, slot := range pl.slotsWithColor(color) {
		spots = append(spots, slot.Number)
	}
	return spots, nil
}

// SpotByReg finds the position of the vehicle with exactly this registration.
func (pl *ParkingLot) SpotByReg(registrationNumber string) (int, error) {
	if !pl.Initialized() {
		return 0, ErrNotCreated
	}

	for _, slot := range pl.slots {
		if slot.IsOccupied() && slot.Vehicle.RegistrationNumber == registrationNumber {
			return slot.Number, nil
		}
	}
	return 0, ErrVehicleNotFound
}

func (pl *ParkingLot) slotsWithColor(color string) []*Slot {
	var matched []*Slot
	for _, slot := range pl.slots {
		if slot.IsOccupied() && slot.Vehicle.IsColor(color) {
			matched = append(matched, slot)
		}
	}
	return matched
}
