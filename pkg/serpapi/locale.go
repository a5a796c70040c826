package serpapi

import "strings"

// localeEntry maps a recognizable place name to Google gl/hl params.
type localeEntry struct {
	name string
	gl   string
	hl   string
}

// locales are checked as case-insensitive substrings of the search
// location. City names route to their country's locale.
var locales = []localeEntry{
	{"United States", "us", "en"}, {"USA", "us", "en"}, {"America", "us", "en"},
	{"New York", "us", "en"}, {"California", "us", "en"},
	{"United Kingdom", "gb", "en"}, {"Britain", "gb", "en"}, {"England", "gb", "en"},
	{"London", "gb", "en"}, {"UK", "gb", "en"},
	{"United Arab Emirates", "ae", "en"}, {"UAE", "ae", "en"}, {"Dubai", "ae", "en"}, {"Abu Dhabi", "ae", "en"},
	{"France", "fr", "fr"}, {"Paris", "fr", "fr"},
	{"Germany", "de", "de"}, {"Berlin", "de", "de"},
	{"India", "in", "en"}, {"Mumbai", "in", "en"}, {"Delhi", "in", "en"},
	{"Bangalore", "in", "en"}, {"Bengaluru", "in", "en"}, {"Hyderabad", "in", "en"},
	{"Canada", "ca", "en"}, {"Toronto", "ca", "en"}, {"Vancouver", "ca", "en"},
	{"Australia", "au", "en"}, {"Sydney", "au", "en"}, {"Melbourne", "au", "en"},
	{"Singapore", "sg", "en"},
	{"Netherlands", "nl", "nl"}, {"Amsterdam", "nl", "nl"},
	{"Switzerland", "ch", "de"}, {"Zurich", "ch", "de"},
	{"Sweden", "se", "sv"}, {"Stockholm", "se", "sv"},
	{"Ireland", "ie", "en"}, {"Dublin", "ie", "en"},
	{"Israel", "il", "en"}, {"Tel Aviv", "il", "en"},
	{"Saudi Arabia", "sa", "ar"}, {"Riyadh", "sa", "ar"}, {"KSA", "sa", "ar"},
	{"Qatar", "qa", "ar"}, {"Doha", "qa", "ar"},
	{"Oman", "om", "ar"}, {"Muscat", "om", "ar"},
	{"Bahrain", "bh", "ar"},
}

// localeFor resolves gl/hl for a free-form location, defaulting to the
// US English locale.
func localeFor(location string) (gl, hl string) {
	loc := strings.ToLower(location)
	for _, e := range locales {
		if strings.Contains(loc, strings.ToLower(e.name)) {
			return e.gl, e.hl
		}
	}
	return "us", "en"
}
