package flexnor

import (
	"errors"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func registryFlash(t *testing.T, ctrl *FakeController) *Flash {
	t.Helper()
	f, err := NewFlash(ctrl, 0, testConfig(testGeometry), WithLogger(golog.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	return f
}

func TestRegistryAddLookup(t *testing.T) {
	r := NewRegistry()
	f := registryFlash(t, NewFakeController(testGeometry, flashIDWinbondW25Q128JV))

	test.That(t, r.Add("nor0", f), test.ShouldBeNil)

	got, err := r.Lookup("nor0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, f)

	_, err = r.Lookup("nor1")
	test.That(t, errors.Is(err, ErrInvalidArg), test.ShouldBeTrue)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	f := registryFlash(t, NewFakeController(testGeometry, flashIDWinbondW25Q128JV))

	test.That(t, r.Add("nor0", f), test.ShouldBeNil)
	err := r.Add("nor0", f)
	test.That(t, errors.Is(err, ErrInvalidArg), test.ShouldBeTrue)

	test.That(t, r.Add("", f), test.ShouldNotBeNil)
	test.That(t, r.Add("nor1", nil), test.ShouldNotBeNil)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		f := registryFlash(t, NewFakeController(testGeometry, flashIDWinbondW25Q128JV))
		test.That(t, r.Add(name, f), test.ShouldBeNil)
	}
	test.That(t, r.Names(), test.ShouldResemble, []string{"alpha", "mid", "zeta"})
}

func TestRegistryInitAll(t *testing.T) {
	r := NewRegistry()
	good := registryFlash(t, NewFakeController(testGeometry, flashIDWinbondW25Q128JV))
	test.That(t, r.Add("good", good), test.ShouldBeNil)

	badCtrl := NewFakeController(testGeometry, flashIDWinbondW25Q128JV)
	badCtrl.NotReady = true
	bad := registryFlash(t, badCtrl)
	test.That(t, r.Add("bad", bad), test.ShouldBeNil)

	err := r.InitAll()
	test.That(t, errors.Is(err, ErrNotReady), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"bad"`)

	// The healthy device still came up.
	test.That(t, good.Write(0, []byte{0x01}), test.ShouldBeNil)
}
