package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	require.Equal(t, "invalid mapping", T("invalid_mapping", nil))

	SetLanguage("ja")
	t.Cleanup(func() { SetLanguage("en") })
	require.NotEqual(t, "invalid mapping", T("invalid_mapping", nil))
	require.NotEmpty(t, T("mandatory_failure", nil))
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	require.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	require.Equal(t, "X:parse_error", T("parse_error", nil))

	SetTranslator(nil)
	require.Equal(t, "parse error", T("parse_error", nil))
}
