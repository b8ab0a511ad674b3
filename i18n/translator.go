package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides the values embedded in the message: "path", "source" (only
// when a rename made the input location differ), "expected", "got",
// "allowed", "reason" and "cause".
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return field(data, "ja") + " が入力に存在しません。期待する型: " + data["expected"]
		case "invalid_type":
			return field(data, "ja") + " の型がモデルと一致しません。期待する型: " + data["expected"] + "。実際の値: " + data["got"]
		case "invalid_enum":
			return field(data, "ja") + " の値は列挙に含まれません。許可される値: " + data["allowed"] + "。実際の値: " + data["got"]
		case "declaration":
			return withReason("モデルのフィールド \""+data["path"]+"\" の宣言が不正です", data)
		case "invalid_argument":
			return withCause(data["reason"], data)
		}
	default: // "en"
		switch code {
		case "required":
			return field(data, "en") + " not exists in provided data. Expecting type: " + data["expected"]
		case "invalid_type":
			return field(data, "en") + " doesn't match type in declared model. Expected type: " + data["expected"] + ". Gotten: " + data["got"]
		case "invalid_enum":
			return field(data, "en") + " value not allowed in Enum. Allowed one of this values: " + data["allowed"] + ". Gotten: " + data["got"]
		case "declaration":
			return withReason("Error in declaring model field \""+data["path"]+"\"", data)
		case "invalid_argument":
			return withCause(data["reason"], data)
		}
	}
	return code
}

func field(data map[string]string, lang string) string {
	var b strings.Builder
	if lang == "ja" {
		b.WriteString("フィールド ")
	} else {
		b.WriteString("Field ")
	}
	b.WriteString(data["path"])
	if src, ok := data["source"]; ok {
		if lang == "ja" {
			b.WriteString(" (入力上の位置 " + src + ")")
		} else {
			b.WriteString(" searched in " + src)
		}
	}
	return b.String()
}

func withReason(msg string, data map[string]string) string {
	if r := data["reason"]; r != "" {
		return msg + ": " + r
	}
	return msg
}

func withCause(msg string, data map[string]string) string {
	if c := data["cause"]; c != "" {
		return msg + ". Error:\n" + c
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
