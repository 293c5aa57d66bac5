package hotdog

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		labels []Label
		want   Verdict
	}{
		// Empty input.
		{name: "nil list", labels: nil, want: Verdict{Kind: VerdictNoLabels}},
		{name: "empty list", labels: []Label{}, want: Verdict{Kind: VerdictNoLabels}},

		// Hot dog matches.
		{
			name:   "hot dog above threshold",
			labels: []Label{{"hot dog", 0.51}},
			want:   Verdict{Kind: VerdictHotDog},
		},
		{
			name:   "hot dog not first",
			labels: []Label{{"bread", 0.2}, {"hot dog", 0.9}},
			want:   Verdict{Kind: VerdictHotDog},
		},
		{
			name:   "second hot dog entry matches",
			labels: []Label{{"hot dog", 0.3}, {"sausage", 0.8}, {"hot dog", 0.7}},
			want:   Verdict{Kind: VerdictHotDog},
		},

		// Threshold is strict.
		{
			name:   "hot dog at threshold",
			labels: []Label{{"hot dog", 0.5}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's may be hot dog"},
		},

		// Exact, case-sensitive match.
		{
			name:   "capitalized label is not a match",
			labels: []Label{{"Hot Dog", 0.99}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's may be Hot Dog"},
		},
		{
			name:   "hotdog without space is not a match",
			labels: []Label{{"hotdog", 0.99}, {"food", 0.5}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a hotdog"},
		},

		// Guess phrasing.
		{
			name:   "single label high confidence uses may be",
			labels: []Label{{"pizza", 0.95}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's may be pizza"},
		},
		{
			name:   "two labels confident top",
			labels: []Label{{"pizza", 0.95}, {"bread", 0.3}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a pizza"},
		},
		{
			name:   "two labels unsure top",
			labels: []Label{{"pizza", 0.80}, {"bread", 0.3}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a pizza or bread"},
		},
		{
			name:   "top exactly at confident threshold",
			labels: []Label{{"pizza", 0.90}, {"bread", 0.3}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a pizza or bread"},
		},
		{
			name:   "low-confidence hot dog falls back to guess",
			labels: []Label{{"sausage", 0.7}, {"hot dog", 0.4}, {"bun", 0.3}},
			want:   Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a sausage or hot dog"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tc.labels)
			if got != tc.want {
				t.Errorf("Classify(%v) = %+v, want %+v", tc.labels, got, tc.want)
			}
		})
	}
}

func TestClassifyThresholds(t *testing.T) {
	t.Parallel()

	if HotDogThreshold != 0.5 {
		t.Errorf("HotDogThreshold = %v, want 0.5", HotDogThreshold)
	}
	if ConfidentGuessThreshold != 0.90 {
		t.Errorf("ConfidentGuessThreshold = %v, want 0.90", ConfidentGuessThreshold)
	}
	if HotDogLabel != "hot dog" {
		t.Errorf("HotDogLabel = %q, want %q", HotDogLabel, "hot dog")
	}
}

func TestClassifyDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	labels := []Label{{"pizza", 0.8}, {"bread", 0.3}}
	_ = Classify(labels)
	if labels[0] != (Label{"pizza", 0.8}) || labels[1] != (Label{"bread", 0.3}) {
		t.Errorf("Classify modified its input: %v", labels)
	}
}

func TestVerdictHeadline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verdict Verdict
		want    string
		str     string
	}{
		{Verdict{Kind: VerdictHotDog}, "It's a Hot Dog", "It's a Hot Dog"},
		{
			Verdict{Kind: VerdictNotHotDog, Guess: "It's probably a pizza"},
			"It's not a Hot Dog",
			"It's not a Hot Dog. It's probably a pizza",
		},
		{Verdict{Kind: VerdictNoLabels}, "Couldn't find any object in the photo", "Couldn't find any object in the photo"},
	}

	for _, tc := range tests {
		if got := tc.verdict.Headline(); got != tc.want {
			t.Errorf("Headline() for %v = %q, want %q", tc.verdict.Kind, got, tc.want)
		}
		if got := tc.verdict.String(); got != tc.str {
			t.Errorf("String() for %v = %q, want %q", tc.verdict.Kind, got, tc.str)
		}
	}
}

func TestVerdictKindText(t *testing.T) {
	t.Parallel()

	v := Verdict{Kind: VerdictNotHotDog, Guess: "It's may be pizza"}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"not_hot_dog","guess":"It's may be pizza"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Verdict
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != v {
		t.Errorf("Unmarshal = %+v, want %+v", back, v)
	}

	var k VerdictKind
	if err := k.UnmarshalText([]byte("burger")); err == nil {
		t.Error("UnmarshalText(burger) succeeded, want error")
	}
}
