// Package capture reads the metadata encoded in the names of packet captures
// recorded while testing a driver.
//
// Capture files are named
//
//	<driver>[-<version>]-[<station MAC>]-<rx|tx>.pcap
//
// where driver is one of 8192cu, rtl8192cu or rtl8xxxu.
package capture

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"regexp"
)

// ErrUnexpectedFilename is returned for capture names not following the
// naming scheme.
var ErrUnexpectedFilename = errors.New("capture: unexpected filename")

// Direction tells whether a capture holds received or transmitted frames.
type Direction string

const (
	RX Direction = "rx"
	TX Direction = "tx"
)

// Drivers lists the driver names a capture may be attributed to.
var Drivers = []string{"8192cu", "rtl8192cu", "rtl8xxxu"}

var filenamePattern = regexp.MustCompile(
	`^(?P<driver>8192cu|rtl8192cu|rtl8xxxu)(?:-(?P<version>[^:]+))?-(?P<mac>(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2})?-?(?P<direction>[rt]x)\.pcap`)

// Metadata is what a capture filename tells about the capture.
type Metadata struct {
	Driver     string    `json:"driver"`
	Version    string    `json:"version,omitempty"`     // empty if the name carries none
	StationMAC string    `json:"station_mac,omitempty"` // lower-case, empty if the name carries none
	Direction  Direction `json:"direction"`
}

// ParseMetadata extracts the metadata from the base name of path.
func ParseMetadata(path string) (Metadata, error) {
	base := filepath.Base(path)
	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return Metadata{}, fmt.Errorf("%w: %q", ErrUnexpectedFilename, base)
	}

	md := Metadata{
		Driver:    m[filenamePattern.SubexpIndex("driver")],
		Version:   m[filenamePattern.SubexpIndex("version")],
		Direction: Direction(m[filenamePattern.SubexpIndex("direction")]),
	}
	if mac := m[filenamePattern.SubexpIndex("mac")]; mac != "" {
		hw, err := net.ParseMAC(mac)
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: %q: %v", ErrUnexpectedFilename, base, err)
		}
		md.StationMAC = hw.String()
	}
	return md, nil
}

func (m Metadata) String() string {
	version := m.Version
	if version == "" {
		version = "unversioned"
	}
	mac := "unknown station"
	if m.StationMAC != "" {
		mac = m.StationMAC
	}
	return fmt.Sprintf("%s (%s) %s %s", m.Driver, version, mac, m.Direction)
}
