// internals/features/ai/topics.go
package ai

// TopicKeywords: kata kunci Norwegia per topik IRL, dipakai untuk
// cek relevansi teks user dengan topik tantangan.
var TopicKeywords = map[string][]string{
	"kafe":      {"kafe", "kaffe", "te", "kake", "bestille", "kopp", "drikke"},
	"butikk":    {"butikk", "handle", "kjøpe", "pris", "betale", "varer", "tilbud"},
	"transport": {"buss", "tog", "trikk", "bane", "billett", "stasjon", "holdeplass", "reise"},
	"park":      {"park", "tur", "gå", "natur", "trær", "benk", "gress"},
	"bibliotek": {"bibliotek", "bok", "bøker", "låne", "lese", "stille"},
	"museum":    {"museum", "utstilling", "kunst", "historie", "billett"},
	"mat":       {"mat", "spise", "restaurant", "meny", "middag", "lunsj", "frokost", "smake"},
	"marked":    {"marked", "torg", "frukt", "grønnsaker", "selger", "kjøpe"},
	"apotek":    {"apotek", "medisin", "resept", "vondt", "syk"},
	"bank":      {"bank", "penger", "konto", "kort", "betale"},
	"post":      {"post", "pakke", "brev", "sende", "frimerke"},
	"trening":   {"trening", "trene", "gym", "løpe", "svømme", "sport"},
	"skole":     {"skole", "lære", "lærer", "klasse", "leksjon", "studere"},
	"jobb":      {"jobb", "arbeid", "kontor", "møte", "kollega"},
	"vær":       {"vær", "regn", "sol", "snø", "kaldt", "varmt", "vind"},
	"familie":   {"familie", "mor", "far", "barn", "søster", "bror", "besøke"},
	"venner":    {"venn", "venner", "møte", "snakke", "sammen", "hyggelig"},
	"hjem":      {"hjem", "hus", "leilighet", "rom", "kjøkken", "stue"},
	"natur":     {"natur", "fjell", "skog", "sjø", "fjord", "tur", "ute"},
	"musikk":    {"musikk", "konsert", "sang", "høre", "spille", "band"},
	"kino":      {"kino", "film", "se", "billett", "popcorn"},
	"sykehus":   {"sykehus", "lege", "time", "syk", "helse"},
	"frisør":    {"frisør", "hår", "klippe", "time"},
	"hotell":    {"hotell", "rom", "booke", "overnatte", "resepsjon"},
	"flyplass":  {"flyplass", "fly", "bagasje", "gate", "reise", "pass"},
	"strand":    {"strand", "bade", "sol", "sand", "sjø", "svømme"},
	"bursdag":   {"bursdag", "feire", "gave", "kake", "gratulere", "fest"},
	"helg":      {"helg", "lørdag", "søndag", "fri", "slappe", "planer"},
	"høytid":    {"jul", "påske", "feire", "tradisjon", "familie", "mat"},
}

// KeywordsForTopic fallback ke kata topiknya sendiri kalau tidak terdaftar
func KeywordsForTopic(topic string) []string {
	if kws, ok := TopicKeywords[topic]; ok {
		return kws
	}
	if topic == "" {
		return nil
	}
	return []string{topic}
}
