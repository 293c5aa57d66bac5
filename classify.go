package hotdog

const (
	// HotDogLabel is the label text that counts as a match. Compared exactly.
	HotDogLabel = "hot dog"

	// HotDogThreshold is the confidence a HotDogLabel entry must exceed.
	HotDogThreshold = 0.5

	// ConfidentGuessThreshold is the top-label confidence above which the
	// guess names only that label instead of the top two.
	ConfidentGuessThreshold = 0.90
)

// Classify reduces a ranked label list to a Verdict.
//
// Any entry (not only the first) named HotDogLabel with confidence strictly
// above HotDogThreshold yields VerdictHotDog. Otherwise the guess is built
// from labels[0] and, when present, labels[1]. A single label always uses
// the "may be" phrasing regardless of its confidence.
func Classify(labels []Label) Verdict {
	if len(labels) == 0 {
		return Verdict{Kind: VerdictNoLabels}
	}

	for _, l := range labels {
		if l.Name == HotDogLabel && l.Confidence > HotDogThreshold {
			return Verdict{Kind: VerdictHotDog}
		}
	}

	return Verdict{Kind: VerdictNotHotDog, Guess: guess(labels)}
}

// guess phrases the best-effort description for a non-empty list.
func guess(labels []Label) string {
	top := labels[0]
	if len(labels) < 2 {
		return "It's may be " + top.Name
	}
	if top.Confidence > ConfidentGuessThreshold {
		return "It's probably a " + top.Name
	}
	return "It's probably a " + top.Name + " or " + labels[1].Name
}
