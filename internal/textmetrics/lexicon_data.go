package textmetrics

var defaultPositiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "awesome",
	"outstanding", "brilliant", "superb", "positive", "happy", "love", "loved",
	"like", "enjoy", "enjoyed", "beautiful", "best", "better", "perfect", "nice",
	"pleasant", "delighted", "glad", "success", "successful", "achieve",
	"achieved", "accomplished", "improve", "improved", "effective", "efficient",
	"innovative", "strong", "skilled", "talented", "reliable", "impressive",
	"exceptional", "benefit", "win", "won", "excited", "exciting", "recommend",
	"valuable", "helpful", "satisfied", "proud", "easy", "clear",
}

var defaultNegativeWords = []string{
	"bad", "terrible", "awful", "horrible", "poor", "worst", "worse", "hate",
	"hated", "dislike", "negative", "sad", "angry", "annoying", "disappointing",
	"disappointed", "fail", "failed", "failure", "problem", "problems", "issue",
	"issues", "difficult", "hard", "weak", "broken", "wrong", "error", "errors",
	"slow", "useless", "boring", "confusing", "unclear", "ugly", "unhappy",
	"frustrated", "frustrating", "lacking", "lack", "mistake", "mistakes",
	"inefficient", "ineffective", "unreliable", "waste", "crisis", "loss", "lost",
}

var defaultStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "could", "did", "do", "does",
	"doing", "down", "during", "each", "even", "every", "few", "for", "from",
	"further", "had", "has", "have", "having", "he", "her", "here", "hers",
	"herself", "him", "himself", "his", "how", "i", "if", "in", "into", "is",
	"it", "its", "itself", "just", "least", "less", "many", "may", "me", "might",
	"more", "most", "much", "must", "my", "myself", "never", "no", "nor", "not",
	"now", "of", "off", "on", "once", "only", "or", "other", "ought", "our",
	"ours", "ourselves", "out", "over", "own", "same", "shall", "she", "should",
	"since", "so", "some", "still", "such", "than", "that", "the", "their",
	"theirs", "them", "themselves", "then", "there", "these", "they", "this",
	"those", "though", "through", "thus", "to", "too", "under", "until", "up",
	"upon", "very", "was", "we", "well", "were", "what", "when", "where",
	"whether", "which", "while", "who", "whom", "whose", "why", "will", "with",
	"within", "without", "would", "yet", "you", "your", "yours", "yourself",
	"yourselves",
}
