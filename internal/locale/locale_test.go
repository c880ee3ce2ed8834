package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateCondition(t *testing.T) {
	l := Default()

	require.Equal(t, "Açık Hava", l.TranslateCondition("clear sky"))
	require.Equal(t, "Hafif Yağmur", l.TranslateCondition("Light Rain"))
	require.Equal(t, "Kar", l.TranslateCondition("SNOW"))
	require.Equal(t, "mist", l.TranslateCondition("mist"))
	require.Equal(t, "", l.TranslateCondition(""))
}

func TestDefaultMessages(t *testing.T) {
	m := Default().Messages

	require.Equal(t, "Hava durumu bilgisi alınamadı geçerli bir şehir giriniz...", m.LookupFailed)
	require.Equal(t, "Listeyi Silmek İstediğinize Emin Misiniz?", m.ClearConfirm)
	require.Equal(t, "Şehir giriniz.", m.IdlePrompt)
}

func TestParse(t *testing.T) {
	l, err := Parse([]byte(`
messages:
  lookupFailed: "lookup failed"
conditions:
  " Clear Sky ": "Clear"
`))
	require.NoError(t, err)
	require.Equal(t, "Clear", l.TranslateCondition("clear sky"))

	_, err = Parse([]byte("messages: {}\n"))
	require.Error(t, err)
}
