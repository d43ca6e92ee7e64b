package inspect

import "genmark/internal/bundle"

// Metadata describes the inspection to hosts that list it.
type Metadata struct {
	DisplayName      string
	Group            string
	ShortName        string
	EnabledByDefault bool
}

// Info returns the inspection labels from b (the default bundle when nil).
func Info(b *bundle.Bundle) Metadata {
	if b == nil {
		b = bundle.Default()
	}
	return Metadata{
		DisplayName:      b.Message(bundle.InspectionDisplayName),
		Group:            b.Message(bundle.InspectionGroup),
		ShortName:        b.Message(bundle.InspectionShortName),
		EnabledByDefault: true,
	}
}
