package vocab

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Reader derives a kana reading for a word.
type Reader interface {
	Reading(word string) string
}

// KagomeReader derives hiragana readings with the kagome morphological
// analyzer and the IPA dictionary.
type KagomeReader struct {
	t *tokenizer.Tokenizer
}

// NewKagomeReader loads the IPA dictionary. This takes a noticeable moment,
// so callers only build one when reading fill is requested.
func NewKagomeReader() (*KagomeReader, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeReader{t: t}, nil
}

// Reading returns the hiragana reading of word, or "" when any token has no
// known reading.
func (k *KagomeReader) Reading(word string) string {
	var b strings.Builder
	for _, token := range k.t.Tokenize(word) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 7 is the katakana reading.
		features := token.Features()
		if len(features) <= 7 || features[7] == "*" {
			if isKana(token.Surface) {
				b.WriteString(ToHiragana(token.Surface))
				continue
			}
			return ""
		}
		b.WriteString(ToHiragana(features[7]))
	}
	return b.String()
}

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

func isKana(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x3041 && r <= 0x3096: // hiragana
		case r >= 0x30A1 && r <= 0x30FA: // katakana
		case r == 0x30FC: // prolonged sound mark
		default:
			return false
		}
	}
	return s != ""
}
