package analysis

import "regexp"

// markerRule is one tagged phrase pattern. Rule tables are ordered so each
// rule can be unit-tested on its own.
type markerRule struct {
	tag string
	re  *regexp.Regexp
}

var questionWordRe = regexp.MustCompile(`(?i)^\s*(what|where|when|why|how|who|which|can|could|would|will|should|do|does|did|is|are|was|were)\b`)

var fillerStartRe = regexp.MustCompile(`(?i)^\s*(uh|um|er|ah|hmm|well)\b`)

var fillerWordRe = regexp.MustCompile(`(?i)^(uh|um|er|ah|hmm|well)[,.!?]*$`)

// fillerAffirmationRe catches hesitant agreement openers ("um, yeah so...").
var fillerAffirmationRe = regexp.MustCompile(`(?i)^\s*(uh|um|er|ah|hmm|well)[,.\s]+(yeah|yes|sure|ok|okay|right)\b`)

var deflectionRe = regexp.MustCompile(`(?i)(what did you say|can you repeat|say that again|come again|i don'?t understand|i didn'?t (catch|get) that)`)

var repeatedQuestionRe = regexp.MustCompile(`(?i)(what did you (say|ask)|is that what you (said|asked))`)

var uncertaintyRe = regexp.MustCompile(`(?i)\b(i (think|guess|suppose)|maybe|kind of|sort of|i don'?t know)\b`)

var confidenceMarkerRules = []markerRule{
	{"absolutely", regexp.MustCompile(`(?i)\babsolutely\b`)},
	{"certainly", regexp.MustCompile(`(?i)\bcertainly\b`)},
	{"definitely", regexp.MustCompile(`(?i)\bdefinitely\b`)},
	{"of course", regexp.MustCompile(`(?i)\bof course\b`)},
	{"i can help", regexp.MustCompile(`(?i)\bi can (help|do that|handle that)\b`)},
	{"without a doubt", regexp.MustCompile(`(?i)\bwithout a doubt\b`)},
	{"i'm confident", regexp.MustCompile(`(?i)\bi'?m confident\b`)},
	{"guaranteed", regexp.MustCompile(`(?i)\bguarantee(d|s)?\b`)},
}

var empathyMarkerRules = []markerRule{
	{"i understand", regexp.MustCompile(`(?i)\bi (completely |totally )?understand\b`)},
	{"i hear you", regexp.MustCompile(`(?i)\bi hear (you|what you'?re saying)\b`)},
	{"that makes sense", regexp.MustCompile(`(?i)\bthat makes (total |perfect )?sense\b`)},
	{"i appreciate", regexp.MustCompile(`(?i)\bi appreciate\b`)},
	{"i can see why", regexp.MustCompile(`(?i)\bi can see (how|why|where)\b`)},
	{"that must be", regexp.MustCompile(`(?i)\bthat must be\b`)},
}

var acknowledgmentMarkerRules = []markerRule{
	{"got it", regexp.MustCompile(`(?i)\bgot it\b`)},
	{"i see", regexp.MustCompile(`(?i)\bi see\b`)},
	{"understood", regexp.MustCompile(`(?i)\bunderstood\b`)},
	{"makes sense", regexp.MustCompile(`(?i)\bmakes sense\b`)},
	{"good point", regexp.MustCompile(`(?i)\b(good|great|fair) (point|question)\b`)},
	{"thanks for sharing", regexp.MustCompile(`(?i)\bthanks for (sharing|letting me know|telling me)\b`)},
}

var valueStatementMarkerRules = []markerRule{
	{"save", regexp.MustCompile(`(?i)\bsav(e|es|ing) (you |your )?(time|money|costs?)\b`)},
	{"benefit", regexp.MustCompile(`(?i)\bbenefits?\b`)},
	{"value", regexp.MustCompile(`(?i)\bvalue\b`)},
	{"roi", regexp.MustCompile(`(?i)\b(roi|return on investment)\b`)},
	{"improve", regexp.MustCompile(`(?i)\bimprov(e|es|ing)\b`)},
	{"increase", regexp.MustCompile(`(?i)\bincreas(e|es|ing) (your |the )?(revenue|sales|productivity|efficiency)\b`)},
	{"reduce", regexp.MustCompile(`(?i)\breduc(e|es|ing) (your |the )?(costs?|overhead|churn|risk)\b`)},
}

// stopWords are stripped before keyword-overlap matching, along with any
// word of two characters or fewer.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "your": true,
	"what": true, "which": true, "their": true, "about": true, "would": true,
	"there": true, "could": true, "other": true, "this": true, "that": true,
	"with": true, "from": true, "have": true, "will": true, "been": true,
	"does": true, "did": true, "how": true, "when": true, "where": true,
	"who": true, "why": true, "should": true, "were": true, "they": true,
}

// matchMarkers returns the tags of every rule matching text, in rule order.
func matchMarkers(rules []markerRule, text string) []string {
	var matched []string
	for _, rule := range rules {
		if rule.re.MatchString(text) {
			matched = append(matched, rule.tag)
		}
	}
	return matched
}
