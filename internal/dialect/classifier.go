package dialect

import (
	"bytes"
	"regexp"
)

// Classification is the result of scoring evidence for a file.
type Classification struct {
	Lang            Lang
	Score           int
	TotalScore      int
	Confidence      float64
	ObservedSignals int
}

// Classifier scores evidence and chooses a dominant language.
// It is intentionally simple; callers apply their own thresholds.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{Lang: None}
	}

	scores := make(map[Lang]int, 2)
	total := 0
	for _, h := range e.hints {
		if h.Score <= 0 || h.Lang == None {
			continue
		}
		scores[h.Lang] += h.Score
		total += h.Score
	}

	best, bestScore := None, 0
	for _, e := range languages {
		if s := scores[e.lang]; s > bestScore {
			best, bestScore = e.lang, s
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Classification{
		Lang:            best,
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		ObservedSignals: len(e.hints),
	}
}

type signal struct {
	re     *regexp.Regexp
	lang   Lang
	score  int
	reason string
}

// C++-only constructs that cannot appear in a C header.
var headerSignals = []signal{
	{regexp.MustCompile(`(?m)^\s*namespace\s+\w*\s*\{`), CPP, 5, "namespace block"},
	{regexp.MustCompile(`(?m)^\s*template\s*<`), CPP, 5, "template declaration"},
	{regexp.MustCompile(`(?m)^\s*class\s+\w+[^;]*\{`), CPP, 4, "class definition"},
	{regexp.MustCompile(`(?m)^\s*(public|private|protected)\s*:`), CPP, 3, "access specifier"},
	{regexp.MustCompile(`\w::\w`), CPP, 1, "scope operator"},
	{regexp.MustCompile(`(?m)^\s*extern\s+"C"`), C, 3, "extern \"C\" guard"},
	{regexp.MustCompile(`(?m)^\s*typedef\s+struct\b`), C, 1, "typedef struct"},
}

// Sniff collects evidence from a header's text and returns CPP when the
// C++ signals clearly dominate. Otherwise it returns fallback.
func Sniff(content []byte, fallback Lang) Lang {
	ev := NewEvidence()
	for _, s := range headerSignals {
		for _, loc := range s.re.FindAllIndex(content, 8) {
			ev.Add(Hint{Lang: s.lang, Score: s.score, Reason: s.reason, Offset: uint32(loc[0])}) //nolint:gosec // capped by file size
		}
	}
	if bytes.Contains(content, []byte("#include <iostream>")) {
		ev.Add(Hint{Lang: CPP, Score: 5, Reason: "iostream include"})
	}
	cls := Classifier{}.Classify(ev)
	if cls.Lang == CPP && cls.Score >= 4 && cls.Confidence >= 0.6 {
		return CPP
	}
	return fallback
}
