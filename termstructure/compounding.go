package termstructure

import "fmt"

// Compounding selects how a compound factor maps to an annualized rate.
type Compounding int

const (
	// Simple means 1 + r*t.
	Simple Compounding = iota
	// Compounded means (1 + r/f)^(f*t).
	Compounded
	// Continuous means exp(r*t).
	Continuous
	// SimpleThenCompounded uses Simple up to the first compounding period,
	// Compounded afterwards.
	SimpleThenCompounded
	// CompoundedThenSimple uses Compounded up to the first compounding
	// period, Simple afterwards.
	CompoundedThenSimple
)

func (c Compounding) String() string {
	switch c {
	case Simple:
		return "Simple"
	case Compounded:
		return "Compounded"
	case Continuous:
		return "Continuous"
	case SimpleThenCompounded:
		return "SimpleThenCompounded"
	case CompoundedThenSimple:
		return "CompoundedThenSimple"
	default:
		return fmt.Sprintf("Compounding(%d)", int(c))
	}
}

// ParseCompounding resolves a convention name, as used in curve files.
func ParseCompounding(name string) (Compounding, error) {
	switch name {
	case "Simple":
		return Simple, nil
	case "Compounded":
		return Compounded, nil
	case "Continuous":
		return Continuous, nil
	case "SimpleThenCompounded":
		return SimpleThenCompounded, nil
	case "CompoundedThenSimple":
		return CompoundedThenSimple, nil
	default:
		return 0, fmt.Errorf("unknown compounding %q", name)
	}
}
