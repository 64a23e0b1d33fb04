// Package charger defines the battery-charger property interface: typed
// get/set properties, charge-cycle enable, and event notification. It is a
// pure data/control surface with no state machine; caching of property
// values is entirely on the client.
package charger

// Property identifies one runtime battery parameter.
type Property uint16

const (
	// PropOnline indicates whether an external supply is present; the
	// value is an Online state.
	PropOnline Property = iota
	// PropPresent reports whether a battery is present (bool).
	PropPresent
	// PropStatus is the charging state of the charger (Status).
	PropStatus
	// PropChargeType is the charging algorithm in use (ChargeType).
	PropChargeType
	// PropHealth is the charger health condition (Health).
	PropHealth
	// PropConstantChargeCurrentUA is the charge current sink target in µA.
	PropConstantChargeCurrentUA
	// PropPrechargeCurrentUA is the conditioning current target in µA.
	PropPrechargeCurrentUA
	// PropChargeTermCurrentUA is the charge termination target in µA.
	PropChargeTermCurrentUA
	// PropConstantChargeVoltageUV is the voltage regulation target in µV.
	PropConstantChargeVoltageUV
	// PropInputRegulationCurrentUA is a rising input current threshold,
	// regulated by reducing the charge current output, in µA.
	PropInputRegulationCurrentUA
	// PropInputRegulationVoltageUV is a falling input voltage threshold,
	// regulated by reducing the charge current output, in µV.
	PropInputRegulationVoltageUV
	// PropInputCurrentNotification configures a system notification on
	// input current level and timing (CurrentNotifier).
	PropInputCurrentNotification

	// PropCustomBegin marks the start of vendor-specific properties.
	PropCustomBegin Property = 1 << 8
)

// Online is the external supply state.
type Online int

const (
	OnlineOffline Online = iota
	OnlineFixed
	OnlineProgrammable
)

// Status is the charging state.
type Status int

const (
	StatusUnknown Status = iota
	StatusCharging
	StatusDischarging
	StatusNotCharging
	StatusFull
)

// ChargeType is the charge algorithm in use.
type ChargeType int

const (
	ChargeTypeUnknown ChargeType = iota
	ChargeTypeNone
	// ChargeTypeTrickle is the slowest desired rate, typically for battery
	// detection or preconditioning.
	ChargeTypeTrickle
	ChargeTypeFast
	ChargeTypeStandard
	ChargeTypeAdaptive
	ChargeTypeLongLife
	// ChargeTypeBypass means power conversion is handled externally,
	// typically by a smart wall adaptor.
	ChargeTypeBypass
)

// Health conditions determine the ability to, or the rate of, charge.
type Health int

const (
	HealthUnknown Health = iota
	HealthGood
	HealthOverheat
	HealthOvervoltage
	HealthUnspecFailure
	HealthCold
	HealthWatchdogTimerExpire
	HealthSafetyTimerExpire
	HealthCalibrationRequired
	HealthWarm
	HealthCool
	HealthHot
	HealthNoBattery
)

// Severity grades system notifications.
type Severity uint8

const (
	// SeverityPeak is the most severe level, typically triggered
	// instantaneously.
	SeverityPeak Severity = iota
	SeverityCritical
	SeverityWarning
)

// CurrentNotifier is an input current threshold for the charger to notify
// the system.
type CurrentNotifier struct {
	Severity Severity
	// CurrentUA is the current threshold to be exceeded.
	CurrentUA uint32
	// DurationUS is how long the excess must last before notifying.
	DurationUS uint32
}

// Value holds one property value. Only the field matching the property is
// meaningful.
type Value struct {
	Online                   Online
	Present                  bool
	Status                   Status
	ChargeType               ChargeType
	Health                   Health
	ConstChargeCurrentUA     uint32
	PrechargeCurrentUA       uint32
	ChargeTermCurrentUA      uint32
	ConstChargeVoltageUV     uint32
	InputRegulationCurrentUA uint32
	InputRegulationVoltageUV uint32
	InputCurrentNotification CurrentNotifier
}

// Event identifies an interrupt-driven charger notification.
type Event int

const (
	// EventInputPowerChange triggers when input power is provided or
	// removed.
	EventInputPowerChange Event = iota
	EventChargingDone
	EventFault
	EventTemperatureChange
	EventBatteryLow
	EventWatchdog
)

// EventFunc receives charger event notifications.
type EventFunc func(event Event)

// Charger is a battery charging device.
type Charger interface {
	// Property fetches one runtime battery parameter.
	Property(prop Property) (Value, error)

	// SetProperty configures one runtime battery parameter.
	SetProperty(prop Property, val Value) error

	// ChargeEnable starts or stops a charge cycle.
	ChargeEnable(enable bool) error

	// RegisterCallback installs the event notification callback.
	RegisterCallback(cb EventFunc) error
}
