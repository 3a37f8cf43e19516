package groqstt

import "testing"

func TestKeepFiltersUnreliableSegments(t *testing.T) {
	cases := []struct {
		name string
		seg  segment
		want bool
	}{
		{"confident speech", segment{AvgLogprob: -0.1, NoSpeechProb: 0.05}, true},
		{"boundary logprob", segment{AvgLogprob: -0.5, NoSpeechProb: 0.05}, false},
		{"low confidence", segment{AvgLogprob: -1.2, NoSpeechProb: 0.05}, false},
		{"boundary no-speech", segment{AvgLogprob: -0.1, NoSpeechProb: 0.15}, true},
		{"likely silence", segment{AvgLogprob: -0.1, NoSpeechProb: 0.4}, false},
	}
	for _, c := range cases {
		if got := keep(c.seg); got != c.want {
			t.Errorf("%s: keep(%+v) = %v, want %v", c.name, c.seg, got, c.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	segs := []segment{
		{Text: "  Hello there.", AvgLogprob: -0.2, NoSpeechProb: 0.01},
		{Text: "[background noise]", AvgLogprob: -0.9, NoSpeechProb: 0.6},
		{Text: "How are you? ", AvgLogprob: -0.3, NoSpeechProb: 0.1},
		{Text: "   ", AvgLogprob: -0.1, NoSpeechProb: 0.01},
	}
	got := joinSegments(segs)
	want := "Hello there. How are you?"
	if got != want {
		t.Fatalf("joinSegments = %q, want %q", got, want)
	}
}

func TestJoinSegmentsAllFiltered(t *testing.T) {
	segs := []segment{
		{Text: "noise", AvgLogprob: -2.0, NoSpeechProb: 0.9},
	}
	if got := joinSegments(segs); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}
