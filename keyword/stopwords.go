package keyword

// stopwords is the fixed set of common English function words excluded from
// keyword candidates.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "else": true, "when": true, "while": true,
	"for": true, "nor": true, "not": true, "of": true, "at": true, "by": true,
	"from": true, "with": true, "about": true, "into": true, "onto": true,
	"over": true, "under": true, "again": true, "further": true, "once": true,
	"here": true, "there": true, "all": true, "any": true, "both": true,
	"each": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "only": true, "own": true, "same": true,
	"than": true, "too": true, "very": true, "can": true, "will": true,
	"just": true, "should": true, "now": true, "this": true, "that": true,
	"these": true, "those": true, "is": true, "are": true, "was": true,
	"were": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "your": true, "you": true, "our": true, "their": true,
	"its": true, "his": true, "her": true, "they": true, "them": true,
	"what": true, "which": true, "who": true, "how": true, "why": true,
	"where": true, "also": true, "out": true, "on": true,
	"in": true, "to": true, "as": true, "it": true, "be": true, "do": true,
	"does": true, "did": true, "so": true, "no": true, "yes": true,
	"up": true, "down": true, "get": true, "make": true, "like": true,
}

func isStopword(token string) bool {
	return stopwords[token]
}
