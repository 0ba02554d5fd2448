package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "tag" or "key"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"syntax_error":    "XML syntax error: {err}",
		"tag_mismatch":    "closing tag </{got}> does not match open <{want}>",
		"unbalanced_root": "unbalanced nesting at plist root",
		"orphan_value":    "<{tag}> value in dict without a preceding key",
		"not_container":   "<{tag}> cannot hold a value; <{parent}> is not a container",
		"invalid_value":   "invalid <{tag}> value {text}",
		"duplicate_key":   "duplicate key",
		"too_deep":        "max depth exceeded",
		"truncated":       "input truncated",
		"canceled":        "parse canceled",
	},
	"ja": {
		"syntax_error":    "XML構文エラー: {err}",
		"tag_mismatch":    "終了タグ </{got}> が開始タグ <{want}> と一致しません",
		"unbalanced_root": "plistルートの入れ子が不整合です",
		"orphan_value":    "dict内の <{tag}> に対応するキーがありません",
		"not_container":   "<{parent}> はコンテナではないため <{tag}> を格納できません",
		"invalid_value":   "<{tag}> の値 {text} が不正です",
		"duplicate_key":   "キーが重複しています",
		"too_deep":        "最大深度を超えました",
		"truncated":       "打ち切られました",
		"canceled":        "解析が中断されました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		msg, ok = messages["en"][code]
	}
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
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
