package termstructure

import "fmt"

// Frequency is the number of compounding periods per year.
type Frequency int

const (
	NoFrequency      Frequency = -1
	Once             Frequency = 0
	Annual           Frequency = 1
	Semiannual       Frequency = 2
	EveryFourthMonth Frequency = 3
	Quarterly        Frequency = 4
	Bimonthly        Frequency = 6
	Monthly          Frequency = 12
	Biweekly         Frequency = 26
	Weekly           Frequency = 52
	Daily            Frequency = 365
)

func (f Frequency) String() string {
	switch f {
	case NoFrequency:
		return "NoFrequency"
	case Once:
		return "Once"
	case Annual:
		return "Annual"
	case Semiannual:
		return "Semiannual"
	case EveryFourthMonth:
		return "EveryFourthMonth"
	case Quarterly:
		return "Quarterly"
	case Bimonthly:
		return "Bimonthly"
	case Monthly:
		return "Monthly"
	case Biweekly:
		return "Biweekly"
	case Weekly:
		return "Weekly"
	case Daily:
		return "Daily"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// ParseFrequency resolves a frequency name, as used in curve files.
func ParseFrequency(name string) (Frequency, error) {
	switch name {
	case "NoFrequency":
		return NoFrequency, nil
	case "Once":
		return Once, nil
	case "Annual":
		return Annual, nil
	case "Semiannual":
		return Semiannual, nil
	case "EveryFourthMonth":
		return EveryFourthMonth, nil
	case "Quarterly":
		return Quarterly, nil
	case "Bimonthly":
		return Bimonthly, nil
	case "Monthly":
		return Monthly, nil
	case "Biweekly":
		return Biweekly, nil
	case "Weekly":
		return Weekly, nil
	case "Daily":
		return Daily, nil
	default:
		return 0, fmt.Errorf("unknown frequency %q", name)
	}
}
