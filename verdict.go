package hotdog

import "fmt"

// Label is a single classification result from the labeling service.
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // normalized to [0,1]
}

// VerdictKind is the three-way outcome of Classify.
type VerdictKind int

const (
	VerdictNoLabels  VerdictKind = iota // the service returned no labels
	VerdictHotDog                       // a "hot dog" label above HotDogThreshold
	VerdictNotHotDog                    // anything else; Verdict.Guess is set
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictHotDog:
		return "hot_dog"
	case VerdictNotHotDog:
		return "not_hot_dog"
	default:
		return "no_labels"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k VerdictKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *VerdictKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hot_dog":
		*k = VerdictHotDog
	case "not_hot_dog":
		*k = VerdictNotHotDog
	case "no_labels":
		*k = VerdictNoLabels
	default:
		return fmt.Errorf("hotdog: unknown verdict %q", text)
	}
	return nil
}

// Verdict is the result of Classify.
type Verdict struct {
	Kind  VerdictKind `json:"kind"`
	Guess string      `json:"guess,omitempty"` // only for VerdictNotHotDog
}

// IsHotDog reports whether v is a positive match.
func (v Verdict) IsHotDog() bool { return v.Kind == VerdictHotDog }

// Headline is the user-facing one-line answer.
func (v Verdict) Headline() string {
	switch v.Kind {
	case VerdictHotDog:
		return "It's a Hot Dog"
	case VerdictNotHotDog:
		return "It's not a Hot Dog"
	default:
		return "Couldn't find any object in the photo"
	}
}

func (v Verdict) String() string {
	if v.Guess == "" {
		return v.Headline()
	}
	return v.Headline() + ". " + v.Guess
}
