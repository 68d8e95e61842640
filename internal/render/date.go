package render

import (
	"time"

	"golang.org/x/text/language"
)

// shortDateLayouts holds the numeric short-date layout per supported locale.
// The matcher below negotiates the configured tag against these; unmatched
// locales fall back to en-US.
var shortDateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "02.01.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "02/01/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Swedish, "2006-01-02"},
	{language.Norwegian, "02.01.2006"},
	{language.Japanese, "2006/01/02"},
}

// DateFormatter formats dates in the site's configured locale.
type DateFormatter struct {
	layout string
}

// NewDateFormatter negotiates the locale tag against the supported layouts.
// Invalid tags have been rejected by config validation; anything else that does
// not match still degrades to the en-US layout.
func NewDateFormatter(locale string) *DateFormatter {
	tags := make([]language.Tag, len(shortDateLayouts))
	for i, e := range shortDateLayouts {
		tags[i] = e.tag
	}
	matcher := language.NewMatcher(tags)
	desired, err := language.Parse(locale)
	if err != nil {
		return &DateFormatter{layout: shortDateLayouts[0].layout}
	}
	_, index, _ := matcher.Match(desired)
	return &DateFormatter{layout: shortDateLayouts[index].layout}
}

// Format renders t as a locale-appropriate short date.
func (f *DateFormatter) Format(t time.Time) string {
	return t.Format(f.layout)
}
