package build

import "github.com/skyfend/sapient-client/wire"

var validAlertTypes = map[string]bool{
	wire.AlertTypeInformation: true,
	wire.AlertTypeModeChange:  true,
}

var validAlertStatuses = map[string]bool{
	wire.AlertStatusActive: true,
	wire.AlertStatusClear:  true,
}

// BuildAlert constructs the Alert wrapper, defaulting out-of-range type,
// status and empty description to safe values.
func (b *Builder) BuildAlert(description, alertType, status string) (*wire.Wrapper, error) {
	if !validAlertTypes[alertType] {
		alertType = wire.AlertTypeInformation
	}
	if !validAlertStatuses[status] {
		status = wire.AlertStatusActive
	}
	if description == "" {
		description = "system alert"
	}

	alert := &wire.Alert{
		AlertID:     b.ulids.New(),
		AlertType:   alertType,
		Status:      status,
		Description: description,
	}
	return b.wrap(alert)
}
