package build

import "github.com/skyfend/sapient-client/wire"

// DeviceInfo supplies the config_data fields of the Registration message
// that come from the host application rather than a fixed protocol
// constant: serial number and a free-form firmware version string to be
// parsed for the SoftwareVersion field.
type DeviceInfo struct {
	SerialNumber   string
	RawFirmwareVer string
}

var registrationClassifications = []wire.ClassDef{
	{Type: "Air vehicle", SubClasses: []string{"UAV rotary wing"}},
	{Type: "Human"},
	{Type: "Land vehicle"},
	{Type: "Animal", SubClasses: []string{"Bird"}},
	{Type: "Unknown"},
	{Type: "Other"},
}

var registrationObjectInfoDefs = []wire.ObjectInfoDef{
	{Name: "range"},
	{Name: "azimuth"},
	{Name: "elevation"},
	{Name: "radial_velocity"},
	{Name: "RCS"},
	{Name: "absVel"},
	{Name: "heading"},
	{Name: "trackDuration"},
	{Name: "trackType", AllowedValues: []string{"TWS", "TAS"}},
	{Name: "trackState", AllowedValues: []string{"Confirmed", "Tentative"}},
}

// BuildRegistration constructs the Registration wrapper the client sends on
// every (re-)connect.
func (b *Builder) BuildRegistration(dev DeviceInfo) (*wire.Wrapper, error) {
	reg := &wire.Registration{
		NodeType:    "radar",
		ICDVersion:  icdVersion,
		Name:        "SDH100",
		DisplayName: "Skyfend SDH100",
		Capabilities: []string{
			"platform", "radar band", "FOV", "range", "max targets",
		},
		StatusDef: wire.StatusDefinition{
			IntervalSeconds: 5,
			LocationFormat:  "WGS84",
			ReportedTypes:   []string{"motion-sensitivity", "clutter", "internal-fault"},
		},
		Modes: []wire.ModeDefinition{
			{Name: "Standby", Behaviours: []string{"Active", "Passive"}},
			{Name: "Normal_Detection", Behaviours: []string{"Active", "Passive"}},
		},
		Classifications: registrationClassifications,
		ObjectInfoDefs:  registrationObjectInfoDefs,
		Config: wire.ConfigData{
			Manufacturer:    "Skyfend",
			Model:           "SDH100",
			SerialNumber:    dev.SerialNumber,
			HardwareVersion: "1.0.0.0",
			SoftwareVersion: extractSoftwareVersion(dev.RawFirmwareVer),
		},
	}
	return b.wrap(reg)
}
