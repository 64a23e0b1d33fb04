package flexnor

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestGeometryValidate(t *testing.T) {
	test.That(t, GeometryW25Q128JV.Validate(), test.ShouldBeNil)

	for _, tc := range []struct {
		name string
		geom Geometry
	}{
		{"zero size", Geometry{Size: 0, SectorSize: 4096, BlockSize: 65536, PageSize: 256}},
		{"zero page", Geometry{Size: 1 << 20, SectorSize: 4096, BlockSize: 65536, PageSize: 0}},
		{"sector larger than block", Geometry{Size: 1 << 20, SectorSize: 65536, BlockSize: 4096, PageSize: 256}},
		{"block larger than chip", Geometry{Size: 32 << 10, SectorSize: 4096, BlockSize: 65536, PageSize: 256}},
		{"size not sector multiple", Geometry{Size: 1<<20 + 512, SectorSize: 4096, BlockSize: 65536, PageSize: 256}},
		{"block not sector multiple", Geometry{Size: 1 << 20, SectorSize: 4096, BlockSize: 6144, PageSize: 256}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.geom.Validate()
			test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
		})
	}
}

func TestDeviceConfigValidate(t *testing.T) {
	cfg := DefaultDeviceConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)

	cfg.RootClock = 0
	err := cfg.Validate()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)

	cfg = DefaultDeviceConfig()
	cfg.Geometry.SectorSize = 0
	err = cfg.Validate()
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)
}

func TestNewFlashRejectsBadConfig(t *testing.T) {
	ctrl := NewFakeController(testGeometry, flashIDWinbondW25Q128JV)

	cfg := DefaultDeviceConfig()
	cfg.RootClock = 0
	_, err := NewFlash(ctrl, 0, cfg)
	test.That(t, errors.Is(err, ErrConfig), test.ShouldBeTrue)

	_, err = NewFlash(nil, 0, DefaultDeviceConfig())
	test.That(t, errors.Is(err, ErrInvalidArg), test.ShouldBeTrue)
}
