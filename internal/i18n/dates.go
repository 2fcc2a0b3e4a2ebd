package i18n

import "golang.org/x/text/language"

// DateLayouts are the time layouts used to display picked dates per mode.
type DateLayouts struct {
	Date     string
	Time     string
	DateTime string
}

var layouts = map[language.Tag]DateLayouts{
	language.Turkish: {Date: "02.01.2006", Time: "15:04", DateTime: "02.01.2006 15:04:05"},
	language.English: {Date: "1/2/2006", Time: "03:04 PM", DateTime: "1/2/2006, 3:04:05 PM"},
}

// Layouts returns the display layouts for locale.
func Layouts(locale string) DateLayouts {
	if l, ok := layouts[Match(locale)]; ok {
		return l
	}
	return layouts[Default]
}
