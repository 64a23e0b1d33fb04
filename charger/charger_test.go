package charger_test

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/gentam/flexnor/charger"
)

// fakeCharger is a property-map charger for exercising the interface.
type fakeCharger struct {
	props    map[charger.Property]charger.Value
	charging bool
	cb       charger.EventFunc
}

func newFakeCharger() *fakeCharger {
	return &fakeCharger{props: map[charger.Property]charger.Value{
		charger.PropOnline:  {Online: charger.OnlineFixed},
		charger.PropPresent: {Present: true},
		charger.PropStatus:  {Status: charger.StatusNotCharging},
		charger.PropHealth:  {Health: charger.HealthGood},
	}}
}

func (c *fakeCharger) Property(prop charger.Property) (charger.Value, error) {
	val, ok := c.props[prop]
	if !ok {
		return charger.Value{}, errors.Errorf("unsupported property %d", prop)
	}
	return val, nil
}

func (c *fakeCharger) SetProperty(prop charger.Property, val charger.Value) error {
	c.props[prop] = val
	return nil
}

func (c *fakeCharger) ChargeEnable(enable bool) error {
	c.charging = enable
	status := charger.StatusNotCharging
	if enable {
		status = charger.StatusCharging
	}
	c.props[charger.PropStatus] = charger.Value{Status: status}
	return nil
}

func (c *fakeCharger) RegisterCallback(cb charger.EventFunc) error {
	c.cb = cb
	return nil
}

func TestPropertyRoundTrip(t *testing.T) {
	var dev charger.Charger = newFakeCharger()

	val, err := dev.Property(charger.PropOnline)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val.Online, test.ShouldEqual, charger.OnlineFixed)

	err = dev.SetProperty(charger.PropConstantChargeCurrentUA,
		charger.Value{ConstChargeCurrentUA: 500_000})
	test.That(t, err, test.ShouldBeNil)

	val, err = dev.Property(charger.PropConstantChargeCurrentUA)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val.ConstChargeCurrentUA, test.ShouldEqual, uint32(500_000))

	_, err = dev.Property(charger.PropChargeTermCurrentUA)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestChargeEnable(t *testing.T) {
	var dev charger.Charger = newFakeCharger()

	test.That(t, dev.ChargeEnable(true), test.ShouldBeNil)
	val, err := dev.Property(charger.PropStatus)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val.Status, test.ShouldEqual, charger.StatusCharging)

	test.That(t, dev.ChargeEnable(false), test.ShouldBeNil)
	val, err = dev.Property(charger.PropStatus)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val.Status, test.ShouldEqual, charger.StatusNotCharging)
}

func TestEventCallback(t *testing.T) {
	fc := newFakeCharger()
	var dev charger.Charger = fc

	var got []charger.Event
	err := dev.RegisterCallback(func(event charger.Event) {
		got = append(got, event)
	})
	test.That(t, err, test.ShouldBeNil)

	fc.cb(charger.EventInputPowerChange)
	fc.cb(charger.EventChargingDone)
	test.That(t, got, test.ShouldResemble,
		[]charger.Event{charger.EventInputPowerChange, charger.EventChargingDone})
}

func TestNotifierConfiguration(t *testing.T) {
	var dev charger.Charger = newFakeCharger()

	notifier := charger.CurrentNotifier{
		Severity:   charger.SeverityCritical,
		CurrentUA:  3_000_000,
		DurationUS: 100,
	}
	err := dev.SetProperty(charger.PropInputCurrentNotification,
		charger.Value{InputCurrentNotification: notifier})
	test.That(t, err, test.ShouldBeNil)

	val, err := dev.Property(charger.PropInputCurrentNotification)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val.InputCurrentNotification, test.ShouldResemble, notifier)
}
