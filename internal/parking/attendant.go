package parking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MsgNotCreated = "Sorry, a parking lot has not been created."
	MsgEmpty      = "Parking lot is empty."
	MsgFull       = "Sorry, the parking lot is full."
)

// Attendant owns the lot of a session and turns each operation into the lines
// shown to the user.
type Attendant struct {
	lot *InstrumentedParkingLot
}

func NewAttendant(lot *InstrumentedParkingLot) *Attendant {
	return &Attendant{lot: lot}
}

func (a *Attendant) Create(ctx context.Context, capacity int) string {
	a.lot.Create(ctx, capacity)
	return fmt.Sprintf("Created a parking lot with %d spots.", capacity)
}

func (a *Attendant) Status(ctx context.Context) []string {
	occupiedSlots, err := a.lot.Status(ctx)
	if err != nil {
		return []string{reply(err)}
	}

	if len(occupiedSlots) == 0 {
		return []string{MsgEmpty}
	}

	lines := make([]string, 0, len(occupiedSlots))
	for _, slot := range occupiedSlots {
		lines = append(lines, fmt.Sprintf("%d %s %s",
			slot.Number, slot.Vehicle.RegistrationNumber, slot.Vehicle.DisplayColor()))
	}
	return lines
}

func (a *Attendant) Park(ctx context.Context, registrationNumber, color string) string {
	vehicle := NewVehicle(registrationNumber, color)

	slot, err := a.lot.Park(ctx, vehicle)
	if err != nil {
		return reply(err)
	}

	return fmt.Sprintf("%s car parked in spot %d.", vehicle.DisplayColor(), slot.Number)
}

// Leave frees the slot at the 0-based index.
func (a *Attendant) Leave(ctx context.Context, index int) string {
	slot, _, err := a.lot.Leave(ctx, index)
	if err != nil {
		return reply(err)
	}

	return fmt.Sprintf("Spot %d is free.", slot.Number)
}

func (a *Attendant) RegByColor(ctx context.Context, color string) string {
	regs, err := a.lot.RegByColor(ctx, color)
	if err != nil {
		return reply(err)
	}

	return colorQueryReply(color, regs)
}

func (a *Attendant) SpotByColor(ctx context.Context, color string) string {
	spots, err := a.lot.SpotByColor(ctx, color)
	if err != nil {
		return reply(err)
	}

	labels := make([]string, 0, len(spots))
	for _, spot := range spots {
		labels = append(labels, strconv.Itoa(spot))
	}
	return colorQueryReply(color, labels)
}

func (a *Attendant) SpotByReg(ctx context.Context, registrationNumber string) string {
	spot, err := a.lot.SpotByReg(ctx, registrationNumber)
	if errors.Is(err, ErrVehicleNotFound) {
		return fmt.Sprintf("No cars with registration number %s were found.", registrationNumber)
	}
	if err != nil {
		return reply(err)
	}

	return strconv.Itoa(spot)
}

func colorQueryReply(color string, matches []string) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No cars with color %s were found.", strings.ToUpper(color))
	}
	return strings.Join(matches, ", ")
}

func reply(err error) string {
	var spotErr *SpotError
	switch {
	case errors.Is(err, ErrNotCreated):
		return MsgNotCreated
	case errors.Is(err, ErrLotFull):
		return MsgFull
	case errors.As(err, &spotErr):
		return fmt.Sprintf("There is no car in spot %d.", spotErr.Spot)
	default:
		return err.Error()
	}
}
