package normalization

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"namenorm/dictionaries"
)

// TokenizerOptions опции токенизации
type TokenizerOptions struct {
	// RemoveStopWords удалять стоп-слова языка. Одиночные буквы
	// (возможные инициалы) и союзы-разделители персон сохраняются.
	RemoveStopWords bool
	// PreserveSeparators сохранять запятые как отдельные токены
	PreserveSeparators bool
}

// Tokenizer разбивает исходный текст на токены.
// Чистая функция от (текст, язык, опции): порядок и состав токенов
// полностью детерминированы.
type Tokenizer struct {
	store *dictionaries.Store
}

// NewTokenizer создает токенизатор
func NewTokenizer(store *dictionaries.Store) *Tokenizer {
	return &Tokenizer{store: store}
}

// Tokenize разбивает текст на токены. Цифры и знаки вне списка
// допустимых символов отбрасываются; кавычки отмечают токены
// организаций; составные инициалы разделяются.
func (t *Tokenizer) Tokenize(text, lang string, opts TokenizerOptions) []Token {
	var tokens []Token
	var cur strings.Builder
	curStart := -1
	curQuoted := false
	inQuote := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		raw := cur.String()
		start := curStart
		quoted := curQuoted
		cur.Reset()
		curStart = -1
		tokens = append(tokens, splitRawToken(raw, start, quoted)...)
	}

	for i, r := range text {
		switch {
		case isQuoteRune(r):
			flush()
			inQuote = quoteOpens(r, inQuote)
		case r == ',':
			flush()
			if opts.PreserveSeparators {
				tokens = append(tokens, Token{Text: ",", Start: i, End: i + utf8.RuneLen(r)})
			}
		case isApostrophe(r):
			// Апостроф сохраняется только внутри слова (О'Брайен, Мар'яна)
			if cur.Len() > 0 {
				cur.WriteRune(r)
			}
		case isTokenRune(r):
			if cur.Len() == 0 {
				curStart = i
				curQuoted = inQuote
			}
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	if opts.RemoveStopWords {
		tokens = t.removeStopWords(tokens, lang)
	}
	return tokens
}

// removeStopWords отфильтровывает стоп-слова. Одиночные буквы остаются:
// без контекста их нельзя отличить от инициала. Союзы-разделители персон
// остаются: сегментация опирается на них как на границы групп.
func (t *Tokenizer) removeStopWords(tokens []Token, lang string) []Token {
	kept := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text != "," && t.store.IsStopWord(lang, tok.Text) {
			if utf8.RuneCountInString(tok.Text) > 1 && !t.store.IsConjunction(lang, tok.Text) {
				continue
			}
		}
		kept = append(kept, tok)
	}
	return kept
}

// splitRawToken чистит край токена и разделяет составные инициалы:
// "П.И." -> "П." "И.", "А.Б.Смирнов" -> "А." "Б." "Смирнов".
func splitRawToken(raw string, start int, quoted bool) []Token {
	// Обрезаем паразитную пунктуацию по краям; точка в конце значима
	// только для инициалов и обрабатывается ниже
	trimmedLeft := strings.TrimLeft(raw, ".-'’")
	start += len(raw) - len(trimmedLeft)
	trimmed := strings.TrimRight(trimmedLeft, "-'’")
	if trimmed == "" {
		return nil
	}

	if parts, ok := splitInitialRun(trimmed); ok {
		result := make([]Token, 0, len(parts))
		offset := start
		for _, p := range parts {
			result = append(result, Token{Text: p, Start: offset, End: offset + len(p), Quoted: quoted})
			offset += len(p)
		}
		return result
	}

	// Точка в конце обычного слова — пунктуация предложения
	if !isInitialToken(trimmed) && strings.HasSuffix(trimmed, ".") && utf8.RuneCountInString(trimmed) > 2 {
		if !strings.Contains(strings.TrimSuffix(trimmed, "."), ".") {
			trimmed = strings.TrimSuffix(trimmed, ".")
		}
	}

	return []Token{{Text: trimmed, Start: start, End: start + len(trimmed), Quoted: quoted}}
}

// splitInitialRun разбирает цепочку заглавных инициалов с необязательным
// замыкающим словом с заглавной буквы.
func splitInitialRun(word string) ([]string, bool) {
	var parts []string
	rest := word
	groups := 0

	for {
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError || !unicode.IsUpper(r) {
			break
		}
		if len(rest) <= size || rest[size] != '.' {
			break
		}
		parts = append(parts, rest[:size]+".")
		rest = rest[size+1:]
		groups++
	}

	if groups == 0 {
		return nil, false
	}

	if rest == "" {
		// "П.И." разделяется, одиночный "П." остается как есть
		if groups < 2 {
			return nil, false
		}
		return parts, true
	}

	// Замыкающее слово должно начинаться с заглавной и не содержать точек
	first, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(first) || strings.Contains(rest, ".") || utf8.RuneCountInString(rest) < 2 {
		return nil, false
	}
	return append(parts, rest), true
}

// isInitialToken проверяет форму "X." — одна буква с точкой
func isInitialToken(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	return r != utf8.RuneError && unicode.IsLetter(r) && len(word) == size+1 && word[size] == '.'
}

// isTokenRune проверяет, допустим ли символ внутри токена:
// буквы латиницы, кириллицы и греческого, точка и дефис.
func isTokenRune(r rune) bool {
	if unicode.IsLetter(r) {
		return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r) || unicode.Is(unicode.Greek, r)
	}
	return r == '.' || r == '-'
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

func isQuoteRune(r rune) bool {
	switch r {
	case '"', '«', '»', '“', '”', '„', '‟':
		return true
	}
	return false
}

// quoteOpens возвращает новое состояние "внутри кавычек"
func quoteOpens(r rune, inQuote bool) bool {
	switch r {
	case '«', '“', '„', '‟':
		return true
	case '»', '”':
		return false
	}
	// Прямая кавычка переключает состояние
	return !inQuote
}
