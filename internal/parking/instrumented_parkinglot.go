package parking

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/base-14/examples/go/parking-lot/internal/telemetry"
)

// InstrumentedParkingLot wraps a ParkingLot with spans and metrics. It also
// keeps capacity and occupancy in atomics so observers on other goroutines
// can read them without touching the slots.
type InstrumentedParkingLot struct {
	lot    *ParkingLot
	tracer trace.Tracer

	capacity atomic.Int64
	occupied atomic.Int64

	// Metrics
	parkingOperations metric.Int64Counter
	leavingOperations metric.Int64Counter
	queryOperations   metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedParkingLot(tp *telemetry.Provider) (*InstrumentedParkingLot, error) {
	meter := tp.Meter()

	parkingOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of parking operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	leavingOperations, err := meter.Int64Counter("leaving_operations_total",
		metric.WithDescription("Total number of leaving operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	queryOperations, err := meter.Int64Counter("query_operations_total",
		metric.WithDescription("Total number of lookup operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedParkingLot{
		lot:               &ParkingLot{},
		tracer:            tp.Tracer(),
		parkingOperations: parkingOperations,
		leavingOperations: leavingOperations,
		queryOperations:   queryOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}, nil
}

// Capacity and Occupied are safe to call from any goroutine.
func (ipl *InstrumentedParkingLot) Capacity() int {
	return int(ipl.capacity.Load())
}

func (ipl *InstrumentedParkingLot) Occupied() int {
	return int(ipl.occupied.Load())
}

func (ipl *InstrumentedParkingLot) Create(ctx context.Context, capacity int) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.create",
		trace.WithAttributes(attribute.Int("parking_lot.capacity", capacity)))
	defer span.End()

	start := time.Now()

	prevCapacity := ipl.lot.GetCapacity()
	prevOccupied := ipl.lot.Occupied()

	ipl.lot.Create(capacity)

	newCapacity := ipl.lot.GetCapacity()
	ipl.capacity.Store(int64(newCapacity))
	ipl.occupied.Store(0)

	ipl.totalSlotsGauge.Add(ctx, int64(newCapacity-prevCapacity))
	if prevOccupied > 0 {
		ipl.occupancyGauge.Add(ctx, -int64(prevOccupied))
	}

	span.SetAttributes(attribute.Int("parking_lot.previous_capacity", prevCapacity))
	span.AddEvent("parking_lot_created")

	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("operation", "create"),
		attribute.String("status", "success"),
	))
}

func (ipl *InstrumentedParkingLot) Park(ctx context.Context, vehicle *Vehicle) (*Slot, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", vehicle.RegistrationNumber),
			attribute.String("vehicle.color", vehicle.Color),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_available_slot")

	slot, err := ipl.lot.Park(vehicle)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_color", vehicle.Color),
	}

	if err != nil {
		recordFailure(span, err)
		labels = append(labels, attribute.String("status", statusOf(err)))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Int("allocated_slot_number", slot.Number))
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.Int("slot_number", slot.Number),
		))

		ipl.occupied.Add(1)
		ipl.occupancyGauge.Add(ctx, 1)
	}

	ipl.parkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return slot, err
}

func (ipl *InstrumentedParkingLot) Leave(ctx context.Context, index int) (*Slot, *Vehicle, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.leave",
		trace.WithAttributes(
			attribute.Int("slot_index", index),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_slot")

	slot, vehicle, err := ipl.lot.Leave(index)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "leave"),
	}

	if vehicle != nil {
		span.SetAttributes(
			attribute.String("vehicle.registration_number", vehicle.RegistrationNumber),
			attribute.String("vehicle.color", vehicle.Color),
		)
	}

	if err != nil {
		recordFailure(span, err)
		labels = append(labels, attribute.String("status", statusOf(err)))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Int("slot_number", slot.Number))
		span.AddEvent("slot_released")

		ipl.occupied.Add(-1)
		ipl.occupancyGauge.Add(ctx, -1)
	}

	ipl.leavingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return slot, vehicle, err
}

func (ipl *InstrumentedParkingLot) Status(ctx context.Context) ([]*Slot, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.status")
	defer span.End()

	start := time.Now()

	span.AddEvent("retrieving_status")

	occupiedSlots, err := ipl.lot.Status()

	span.SetAttributes(
		attribute.Int("occupied_slots_count", len(occupiedSlots)),
		attribute.Int("total_capacity", ipl.lot.GetCapacity()),
	)

	ipl.recordQuery(ctx, span, "status", start, err)

	return occupiedSlots, err
}

func (ipl *InstrumentedParkingLot) RegByColor(ctx context.Context, color string) ([]string, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.reg_by_color",
		trace.WithAttributes(attribute.String("vehicle.color", color)))
	defer span.End()

	start := time.Now()

	regs, err := ipl.lot.RegByColor(color)
	span.SetAttributes(attribute.Int("match_count", len(regs)))

	ipl.recordQuery(ctx, span, "reg_by_color", start, err)

	return regs, err
}

func (ipl *InstrumentedParkingLot) SpotByColor(ctx context.Context, color string) ([]int, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.spot_by_color",
		trace.WithAttributes(attribute.String("vehicle.color", color)))
	defer span.End()

	start := time.Now()

	spots, err := ipl.lot.SpotByColor(color)
	span.SetAttributes(attribute.Int("match_count", len(spots)))

	ipl.recordQuery(ctx, span, "spot_by_color", start, err)

	return spots, err
}

func (ipl *InstrumentedParkingLot) SpotByReg(ctx context.Context, registrationNumber string) (int, error) {
	ctx, span := ipl.tracer.Start(ctx, "parking_lot.spot_by_reg",
		trace.WithAttributes(
			attribute.String("registration_number", registrationNumber),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("searching_by_registration")

	slotNumber, err := ipl.lot.SpotByReg(registrationNumber)
	if err == nil {
		span.SetAttributes(attribute.Int("found_slot_number", slotNumber))
		span.AddEvent("vehicle_found", trace.WithAttributes(
			attribute.Int("slot_number", slotNumber),
		))
	}

	ipl.recordQuery(ctx, span, "spot_by_reg", start, err)

	return slotNumber, err
}

func (ipl *InstrumentedParkingLot) recordQuery(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = statusOf(err)
		span.AddEvent(status)
		if errors.Is(err, ErrNotCreated) {
			span.SetStatus(codes.Error, err.Error())
		}
	}

	labels := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("status", status),
	}

	ipl.queryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, ErrNotCreated):
		return "not_created"
	case errors.Is(err, ErrLotFull):
		return "full"
	case errors.Is(err, ErrSpotOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrSpotAlreadyFree):
		return "already_free"
	case errors.Is(err, ErrVehicleNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
