package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return "", errors.New("missing")
}

func TestMatch(t *testing.T) {
	require.Equal(t, language.Turkish, Match())
	require.Equal(t, language.Turkish, Match(""))
	require.Equal(t, language.English, Match("en-US"))
	require.Equal(t, language.English, Match("fr-FR, en;q=0.8"))
	require.Equal(t, language.Turkish, Match("tr-TR"))
	require.Equal(t, language.Turkish, Match("not a locale!!"))
}

func TestCatalogTranslate(t *testing.T) {
	var c Catalog
	msg, err := c.Translate("tr", KeyGenericError)
	require.NoError(t, err)
	require.Equal(t, "Bir hata oluştu", msg)

	msg, err = c.Translate("en", KeyInvalidInput, "age", "too small")
	require.NoError(t, err)
	require.Equal(t, "Invalid age: too small", msg)

	_, err = c.Translate("en", "nope")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestT_PrefersHostTranslator(t *testing.T) {
	host := mapTranslator{KeySubmit: "Send it"}
	require.Equal(t, "Send it", T(host, "en", KeySubmit))
	require.Equal(t, "Tarih Seçiniz", T(host, "tr", KeyDatePlaceholder))
	require.Equal(t, "unknown.key", T(nil, "en", "unknown.key"))
}

func TestLayouts(t *testing.T) {
	require.Equal(t, "02.01.2006", Layouts("tr").Date)
	require.Equal(t, "1/2/2006", Layouts("en-GB").Date)
	require.Equal(t, "15:04", Layouts("").Time)
}
