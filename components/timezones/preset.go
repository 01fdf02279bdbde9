package timezones

import (
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Choices groups zones by region. Zones without a region come first as
// plain options, then one option group per region in first-seen order.
func Choices(zones []string) []form.Choice {
	var (
		plain   []form.Choice
		regions []string
		byName  = make(map[string][]form.Choice)
	)
	for _, zone := range zones {
		opt := form.Opt(zone, City(zone))
		region := Region(zone)
		if region == "" {
			plain = append(plain, opt)
			continue
		}
		if _, ok := byName[region]; !ok {
			regions = append(regions, region)
		}
		byName[region] = append(byName[region], opt)
	}
	out := plain
	for _, region := range regions {
		out = append(out, form.OptGroup(region, byName[region]...))
	}
	return out
}

// Field builds a select over the embedded zone list. It panics only when
// the embedded list is unreadable.
func Field(name, label string, opts ...form.FieldOption) form.FieldDefinition {
	zones, err := DefaultZones()
	if err != nil {
		panic(err)
	}
	return form.Select(name, label, Choices(zones), opts...)
}
