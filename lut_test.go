package flexnor

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestNORLUTIsValid(t *testing.T) {
	test.That(t, NORLUT().Validate(), test.ShouldBeNil)
}

func TestLUTValidateMissingSequence(t *testing.T) {
	lut := NORLUT()
	lut[SeqEraseBlock] = nil
	err := lut.Validate()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
}

func TestLUTValidateOverlongSequence(t *testing.T) {
	lut := NORLUT()
	for i := 0; i < 9; i++ {
		lut[SeqReadStatus1] = append(lut[SeqReadStatus1], Instr{LUTCmdStop, Pads1, 0})
	}
	err := lut.Validate()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
}

func TestLUTValidateXIPSlotContract(t *testing.T) {
	// The AHB read path is wired to slot 0; anything but a quad I/O read
	// there breaks the controller contract.
	lut := NORLUT()
	lut[SeqReadQuadIO] = lut[SeqReadStatus1]
	err := lut.Validate()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "execute-in-place")
}

func TestLUTValidationRunsDuringInit(t *testing.T) {
	lut := NORLUT()
	lut[SeqWriteEnable] = nil

	ctrl := NewFakeController(testGeometry, flashIDWinbondW25Q128JV)
	f, err := NewFlash(ctrl, 0, testConfig(testGeometry), WithLUT(lut))
	test.That(t, err, test.ShouldBeNil)
	err = f.Init()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
}
