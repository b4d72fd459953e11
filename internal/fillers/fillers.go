package fillers

import (
	"strings"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

// Filler word lists by language. Unknown languages fall back to Portuguese,
// matching the upstream transcription service.
var patterns = map[string]map[string]struct{}{
	"pt": toSet("hum", "eh", "ah", "uhm", "uh", "tipo", "ne", "entao", "assim",
		"quer dizer", "basicamente", "na verdade", "enfim", "aham", "hmm", "eee"),
	"en": toSet("um", "uh", "uhm", "like", "you know", "basically", "actually",
		"so", "literally", "right", "i mean", "hmm", "ah"),
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Normalize reduces a language code to the short form used for pattern
// lookup ("pt-BR" -> "pt").
func Normalize(langCode string) string {
	lang := strings.ToLower(langCode)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := patterns[lang]; !ok {
		return "pt"
	}
	return lang
}

// DetectCuts scans a segment's word timestamps for filler words and returns
// one cut per match. Segments without word timestamps yield no cuts.
func DetectCuts(seg timeline.Segment, langCode string) []timeline.Cut {
	set := patterns[Normalize(langCode)]

	var cuts []timeline.Cut
	for _, w := range seg.Words {
		token := strings.ToLower(strings.TrimSpace(w.Word))
		token = strings.Trim(token, ".,!?;:…")
		if _, ok := set[token]; !ok {
			continue
		}
		if w.End <= w.Start {
			continue
		}
		cuts = append(cuts, timeline.Cut{Start: w.Start, End: w.End})
	}
	return cuts
}

// DetectAll runs DetectCuts over every segment and returns the non-empty
// results keyed by segment ID.
func DetectAll(segments []timeline.Segment, langCode string) map[string][]timeline.Cut {
	out := make(map[string][]timeline.Cut)
	for _, seg := range segments {
		if cuts := DetectCuts(seg, langCode); len(cuts) > 0 {
			out[seg.ID] = cuts
		}
	}
	return out
}
