package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "index").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_mapping":
			return "マッピング定義が不正です"
		case "mandatory_failure":
			return "必須マッピングの変換に失敗しました"
		case "not_supported":
			return "このノードではサポートされていない操作です"
		case "invalid_operation":
			return "不正な操作です"
		case "missing_argument":
			return "引数が不足しています"
		case "parse_error":
			return "解析エラー"
		case "invalid_format":
			return "形式が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_mapping":
			return "invalid mapping"
		case "mandatory_failure":
			return "mandatory mapping failed"
		case "not_supported":
			return "operation not supported by this node"
		case "invalid_operation":
			return "invalid operation"
		case "missing_argument":
			return "missing argument"
		case "parse_error":
			return "parse error"
		case "invalid_format":
			return "invalid format"
		}
	}
	return code
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
