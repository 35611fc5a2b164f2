package adapter

import "math"

// SystemLevel maps the maximum active fault level to the wire "system"
// enum string.
func SystemLevel(maxFaultLevel uint32, sysStatus uint32) string {
	switch maxFaultLevel {
	case 0x03:
		return "ERROR"
	case 0x01, 0x02:
		return "WARNING"
	}
	switch sysStatus {
	case 3, 4, 5:
		return "OK"
	default:
		return "UNSPECIFIED"
	}
}

var modeTable = map[uint32]string{
	0:  "default",
	1:  "initializing",
	2:  "self_checking",
	3:  "standby",
	4:  "normal_detection",
	5:  "search_mode",
	6:  "fire_control",
	11: "test_mode",
	22: "factory_mode",
	33: "mesh_network",
	99: "error",
}

// Mode maps sysStatus to the wire mode string via a fixed lookup table.
func Mode(sysStatus uint32) string {
	if s, ok := modeTable[sysStatus]; ok {
		return s
	}
	return "unknown"
}

// NodeLocationErrorDegrees is the fixed ~6 m horizontal position error,
// expressed in degrees: round((6.0/111000.0)*1e5)/1e5.
func NodeLocationErrorDegrees() float64 {
	return math.Round((6.0/111000.0)*1e5) / 1e5
}

// Power source/status codes, from radar status bits B9..B10.
const (
	PowerSourceMains           = 0x00
	PowerSourceInternalBattery = 0x01
)

// Power resolves the status report's power block from the raw source code
// and (when on battery) the battery level percentage.
func Power(source uint32, batteryLevelPercent float64) (sourceStr, status string, level float64, hasLevel bool) {
	switch source {
	case PowerSourceMains:
		return "MAINS", "OK", 0, false
	case PowerSourceInternalBattery:
		st := "OK"
		if batteryLevelPercent < 20 {
			st = "FAULT"
		}
		return "INTERNAL_BATTERY", st, batteryLevelPercent, true
	default:
		return "UNSPECIFIED", "OK", 0, false
	}
}

// TemperatureLevel classifies a temperature reading for a status entry.
func TemperatureLevel(celsius float64) string {
	switch {
	case celsius > 80:
		return "ERROR"
	case celsius > 70:
		return "WARNING"
	default:
		return "INFO"
	}
}

// FaultLevel maps a raw fault level code to a status-entry severity: 0x03
// is ERROR, anything else active is WARNING.
func FaultLevel(level uint32) string {
	if level == 0x03 {
		return "ERROR"
	}
	return "WARNING"
}

// PlatformType extracts bits B3..B5 from the status bitfield.
func PlatformType(statusBits uint32) uint32 {
	return (statusBits >> 3) & 0x7
}

// AttitudeSource extracts bits B15..B16 from the status bitfield.
func AttitudeSource(statusBits uint32) uint32 {
	return (statusBits >> 15) & 0x3
}

// PowerSourceBits extracts bits B9..B10 from the status bitfield.
func PowerSourceBits(statusBits uint32) uint32 {
	return (statusBits >> 9) & 0x3
}
