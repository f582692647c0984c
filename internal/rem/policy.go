package rem

// preciseProperties are the properties whose lengths are converted at full
// precision. Every other property, known or not, is rounded to whole pixels
// before conversion.
var preciseProperties = map[string]bool{
	"font-size":      true,
	"letter-spacing": true,
	"word-spacing":   true,
}

// ShouldRound reports whether lengths of a property are rounded before conversion.
// The lookup is an exact, case-sensitive match on the property name, so
// shorthands and vendor-prefixed variants round.
func ShouldRound(property string) bool {
	return !preciseProperties[property]
}
