// Package i18n holds the built-in message catalog and locale matching for
// dynform. Turkish is the default locale; English is bundled as well.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used across bindings, banners and the submission flow.
const (
	KeyGenericError       = "submission.generic_error"
	KeyMissingEndpoint    = "submission.missing_endpoint"
	KeySubmit             = "button.submit"
	KeyLoading            = "button.loading"
	KeyDismiss            = "banner.dismiss"
	KeySelectPlaceholder  = "select.placeholder"
	KeySearchPlaceholder  = "select.search_placeholder"
	KeyNoOptions          = "select.no_options"
	KeyPickFile           = "file.pick_one"
	KeyPickFiles          = "file.pick_many"
	KeyImagesOnly         = "file.images_only"
	KeyDatePlaceholder    = "date.placeholder"
	KeyRequiredMark       = "field.required_mark"
	KeyInvalidInput       = "field.invalid_input"
	KeyValidationFailed   = "form.validation_failed"
	KeySubmissionAccepted = "form.submission_accepted"
)

// ErrUnknownKey is returned by Translate when the catalog has no entry.
var ErrUnknownKey = errors.New("i18n: unknown message key")

// Default is the locale used when nothing else matches.
var Default = language.Turkish

var supported = []language.Tag{language.Turkish, language.English}

var matcher = language.NewMatcher(supported)

var entries = map[language.Tag]map[string]string{
	language.Turkish: {
		KeyGenericError:       "Bir hata oluştu",
		KeyMissingEndpoint:    "Form gönderimi için endpoint gerekli, ancak sağlanmadı.",
		KeySubmit:             "Gönder",
		KeyLoading:            "Gönderiliyor...",
		KeyDismiss:            "Kapat",
		KeySelectPlaceholder:  "Seçiniz...",
		KeySearchPlaceholder:  "Ara...",
		KeyNoOptions:          "Sonuç bulunamadı",
		KeyPickFile:           "Dosya Seç",
		KeyPickFiles:          "Dosyaları Seç",
		KeyImagesOnly:         "Yalnızca görsel dosyaları seçilebilir: %s",
		KeyDatePlaceholder:    "Tarih Seçiniz",
		KeyRequiredMark:       "*",
		KeyInvalidInput:       "Geçersiz %s: %v",
		KeyValidationFailed:   "Lütfen işaretli alanları düzeltin.",
		KeySubmissionAccepted: "Form başarıyla gönderildi",
	},
	language.English: {
		KeyGenericError:       "Something went wrong",
		KeyMissingEndpoint:    "An endpoint is required to submit the form, but none was provided.",
		KeySubmit:             "Submit",
		KeyLoading:            "Submitting...",
		KeyDismiss:            "Dismiss",
		KeySelectPlaceholder:  "Select...",
		KeySearchPlaceholder:  "Search...",
		KeyNoOptions:          "No results",
		KeyPickFile:           "Choose File",
		KeyPickFiles:          "Choose Files",
		KeyImagesOnly:         "Only image files can be selected: %s",
		KeyDatePlaceholder:    "Select a date",
		KeyRequiredMark:       "*",
		KeyInvalidInput:       "Invalid %s: %v",
		KeyValidationFailed:   "Please fix the highlighted fields.",
		KeySubmissionAccepted: "Form submitted successfully",
	},
}

var builtin = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Default))
	for tag, messages := range entries {
		for key, msg := range messages {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Translator resolves a message key for a locale. Hosts may supply their own
// implementation to override the bundled catalog.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog is the bundled Translator.
type Catalog struct{}

// Translate formats key for locale using the bundled catalog.
func (Catalog) Translate(locale, key string, args ...any) (string, error) {
	tag := Match(locale)
	if _, ok := entries[tag][key]; !ok {
		if _, ok := entries[Default][key]; !ok {
			return "", ErrUnknownKey
		}
	}
	return message.NewPrinter(tag, message.Catalog(builtin)).Sprintf(key, args...), nil
}

// Match picks the closest supported locale for the given preferences.
// Empty or unparsable input yields Default.
func Match(locales ...string) language.Tag {
	prefs := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(l)
		if err != nil {
			continue
		}
		prefs = append(prefs, tags...)
	}
	if len(prefs) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		return Default
	}
	return supported[index]
}

// T translates key through t, falling back to the bundled catalog and
// finally to the key itself.
func T(t Translator, locale, key string, args ...any) string {
	if t != nil {
		if msg, err := t.Translate(locale, key, args...); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if msg, err := (Catalog{}).Translate(locale, key, args...); err == nil {
		return msg
	}
	return key
}
