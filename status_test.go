package flexnor

import (
	"testing"

	"go.viam.com/test"
)

func TestStatusRegisterBits(t *testing.T) {
	sr := StatusRegister(0b0000_0011)
	test.That(t, sr.Busy(), test.ShouldBeTrue)
	test.That(t, sr.WriteEnabled(), test.ShouldBeTrue)
	test.That(t, sr.SectorProtect(), test.ShouldBeFalse)

	sr = StatusRegister(0)
	test.That(t, sr.Busy(), test.ShouldBeFalse)
	test.That(t, sr.String(), test.ShouldEqual, "00000000")
}

func TestStatusRegisterString(t *testing.T) {
	sr := StatusRegister(0b1000_0011)
	s := sr.String()
	test.That(t, s, test.ShouldContainSubstring, "SRP")
	test.That(t, s, test.ShouldContainSubstring, "WEL")
	test.That(t, s, test.ShouldContainSubstring, "BUSY")
}
