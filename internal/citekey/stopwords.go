package citekey

// defaultStopwords are skipped when choosing the title word of a key.
var defaultStopwords = []string{
	"a", "an", "the",
	"and", "or", "nor", "but",
	"on", "of", "for", "to", "in", "with", "by", "from", "at", "into",
	"over", "under", "between", "within", "without", "across",
	"is", "are", "via", "using", "based", "towards", "toward",
	"as", "per", "vs", "versus",
}
