package calendar

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ne"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

// locale tags
const (
	LocaleNepali  = "ne"
	LocaleEnglish = "en"
)

// relative-time translation keys
const (
	keyJustNow    = "relative.just_now"
	keyMinutesAgo = "relative.minutes_ago"
	keyHoursAgo   = "relative.hours_ago"
	keyDaysAgo    = "relative.days_ago"
)

var (
	ErrUnknownLocale = errors.New("unknown locale")

	Nepali  = mustLocale(nepaliData)
	English = mustLocale(englishData)
)

// Locale holds what the Formatter needs to render BS dates in one language.
type Locale struct {
	tag          string
	months       [MonthsPerYear]string
	digits       [10]rune
	daySuffix    string
	notAvailable string
	cldr         locales.Translator
	trans        ut.Translator
}

type localeData struct {
	tag          string
	cldr         locales.Translator
	months       [MonthsPerYear]string
	digits       string
	daySuffix    string
	notAvailable string
	phrases      map[string]string
	cardinals    map[string]map[locales.PluralRule]string
}

var nepaliData = localeData{
	tag:  LocaleNepali,
	cldr: ne.New(),
	months: [MonthsPerYear]string{
		"बैशाख", "जेठ", "असार", "साउन", "भदौ", "असोज",
		"कात्तिक", "मंसिर", "पुस", "माघ", "फागुन", "चैत",
	},
	digits:       "०१२३४५६७८९",
	daySuffix:    "गते",
	notAvailable: "उपलब्ध छैन",
	phrases:      map[string]string{keyJustNow: "भर्खरै"},
	cardinals: map[string]map[locales.PluralRule]string{
		keyMinutesAgo: {locales.PluralRuleOne: "{0} मिनेट अघि", locales.PluralRuleOther: "{0} मिनेट अघि"},
		keyHoursAgo:   {locales.PluralRuleOne: "{0} घण्टा अघि", locales.PluralRuleOther: "{0} घण्टा अघि"},
		keyDaysAgo:    {locales.PluralRuleOne: "{0} दिन अघि", locales.PluralRuleOther: "{0} दिन अघि"},
	},
}

var englishData = localeData{
	tag:  LocaleEnglish,
	cldr: en.New(),
	months: [MonthsPerYear]string{
		"Baisakh", "Jestha", "Asar", "Shrawan", "Bhadra", "Ashwin",
		"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
	},
	digits:       "0123456789",
	notAvailable: "N/A",
	phrases:      map[string]string{keyJustNow: "just now"},
	cardinals: map[string]map[locales.PluralRule]string{
		keyMinutesAgo: {locales.PluralRuleOne: "{0} minute ago", locales.PluralRuleOther: "{0} minutes ago"},
		keyHoursAgo:   {locales.PluralRuleOne: "{0} hour ago", locales.PluralRuleOther: "{0} hours ago"},
		keyDaysAgo:    {locales.PluralRuleOne: "{0} day ago", locales.PluralRuleOther: "{0} days ago"},
	},
}

func newLocale(data localeData) (*Locale, error) {
	uni := ut.New(data.cldr, data.cldr)
	trans, _ := uni.GetTranslator(data.cldr.Locale())

	for key, text := range data.phrases {
		if err := trans.Add(key, text, false); err != nil {
			return nil, errors.Wrapf(err, "adding %s phrase %s", data.tag, key)
		}
	}
	for key, rules := range data.cardinals {
		for rule, text := range rules {
			if err := trans.AddCardinal(key, text, rule, false); err != nil {
				return nil, errors.Wrapf(err, "adding %s phrase %s", data.tag, key)
			}
		}
	}

	l := &Locale{
		tag:          data.tag,
		months:       data.months,
		daySuffix:    data.daySuffix,
		notAvailable: data.notAvailable,
		cldr:         data.cldr,
		trans:        trans,
	}
	digits := []rune(data.digits)
	if len(digits) != len(l.digits) {
		return nil, errors.Errorf("%s locale has %d digits", data.tag, len(digits))
	}
	copy(l.digits[:], digits)
	return l, nil
}

func mustLocale(data localeData) *Locale {
	l, err := newLocale(data)
	if err != nil {
		panic(err)
	}
	return l
}

// LocaleFor returns the locale for a tag ("ne", "en", "ne-NP", ...).
// An empty tag means Nepali.
func LocaleFor(tag string) (*Locale, error) {
	tag = core.CleanString(tag, true /* lower */)
	if len(tag) > 2 && (tag[2] == '-' || tag[2] == '_') {
		tag = tag[:2]
	}
	switch tag {
	case "", LocaleNepali:
		return Nepali, nil
	case LocaleEnglish:
		return English, nil
	}
	return nil, errors.Wrapf(ErrUnknownLocale, "%q", tag)
}

func (l *Locale) Tag() string { return l.tag }

// MonthName returns the name of BS month (1..12), or "" when out of range.
func (l *Locale) MonthName(month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return l.months[month-1]
}

// WeekdayName returns the CLDR wide name of a Gregorian weekday.
func (l *Locale) WeekdayName(wd time.Weekday) string {
	return l.cldr.WeekdayWide(wd)
}

// NotAvailable is rendered in place of dates that cannot be shown.
func (l *Locale) NotAvailable() string { return l.notAvailable }
