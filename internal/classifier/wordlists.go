package classifier

// Entries containing spaces or symbols can never match the word tokenizer but
// are kept so the list stays in sync with the moderation policy document.
var blacklist = map[string]struct{}{
	"idiot":        {},
	"stupid":       {},
	"dumb":         {},
	"f***":         {},
	"bitch":        {},
	"kys":          {},
	"scam":         {},
	"fraud":        {},
	"kill":         {},
	"asshole":      {},
	"motherfucker": {},
	"screw you":    {},
	"shut up":      {},
}

// matched as plain substrings of the lower-cased message
var spamPhrases = []string{
	"click here",
	"buy now",
	"limited offer",
	"visit our",
	"subscribe",
	"free",
	"work from home",
	"earn money",
	"whatsapp group",
	"join now",
	"transfer",
	"upi",
}
